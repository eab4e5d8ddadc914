// internal/appconfig/load_integration_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
}

func TestLoadDefaultPath(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(`{"backend": "mimetype", "debug": true}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, tempDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Debug || cfg.ConfigPath != DefaultConfigPath {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadLegacyFallback(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "magicbench.json"), []byte(`{"clock": "wall"}`), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}
	chdir(t, tempDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ClockName() != "wall" {
		t.Fatalf("expected wall clock from legacy file, got %s", cfg.ClockName())
	}
}

func TestLoadNoConfig(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "no configuration file found") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

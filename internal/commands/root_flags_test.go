package magicbench

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/logging"
	"github.com/spf13/viper"
)

var persistentFlags = []string{"debug", "backend", "clock", "mimeFlags", "readLimit", "output", "export", "logFile", "noColor", "keepSamples"}

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	if cmdFlag == "mimeFlags" {
		_ = flag.Value.(interface{ Replace([]string) error }).Replace(nil)
	} else {
		_ = flag.Value.Set(flag.DefValue)
	}
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points viper at a fresh config file and restores the previous
// state when the test ends.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := writeTempConfig(t, content)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		currentConfig = nil
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range persistentFlags {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "magicbench.log"))
	return configPath
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	configPath := useConfig(t, `{"backend": "mimetype", "clock": "process", "output": "from-config"}`)

	_ = rootCmd.PersistentFlags().Set("clock", "wall")
	_ = rootCmd.PersistentFlags().Set("mimeFlags", "mime_type,continue")
	_ = rootCmd.PersistentFlags().Set("export", "out.json")
	_ = rootCmd.PersistentFlags().Set("noColor", "true")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if currentConfig.ClockName() != "wall" {
		t.Fatalf("expected flag to override config clock, got %s", currentConfig.Clock)
	}
	if currentConfig.ReportPath() != "from-config" {
		t.Fatalf("expected output from config file, got %s", currentConfig.OutputPath)
	}
	if strings.Join(currentConfig.MIMEFlags, ",") != "mime_type,continue" {
		t.Fatalf("expected mimeFlags from flag, got %v", currentConfig.MIMEFlags)
	}
	if currentConfig.ExportPath != "out.json" || !currentConfig.NoColor {
		t.Fatalf("expected flag values to flow into config: %+v", currentConfig)
	}
}

func TestPersistentPreRunEInvalidClock(t *testing.T) {
	useConfig(t, `{"clock": "sundial"}`)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for an unknown clock")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := useConfig(t, "{}")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--clock", "wall", "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	if _, err := rootCmd.ExecuteC(); err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Clock:        wall") {
		t.Fatalf("expected clock in output, got %s", out)
	}
	if !strings.Contains(out, "Available backends:") || !strings.Contains(out, "mimetype") {
		t.Fatalf("expected backend list in output, got %s", out)
	}
}

func TestBenchDirCommandEndToEnd(t *testing.T) {
	useConfig(t, `{"backend": "mimetype", "noColor": true}`)

	samples := t.TempDir()
	if err := os.WriteFile(filepath.Join(samples, "test.pdf"), []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	reportPath := filepath.Join(t.TempDir(), "output")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--clock", "wall", "--output", reportPath, "bench", "dir", "builtin", samples, "3"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	if _, err := rootCmd.ExecuteC(); err != nil {
		t.Fatalf("ExecuteC error: %v\n%s", err, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"OK test.pdf", "MEAN:", "AVERAGE OF MEANS:", "STD OF MEANS: 0.000000e+00 s."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n"); len(lines) != 3 {
		t.Fatalf("expected header plus one row, got %d lines:\n%s", len(lines), data)
	}
}

func TestBenchFileCommandRejectsBadIterations(t *testing.T) {
	useConfig(t, "{}")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })

	rootCmd.SetArgs([]string{"bench", "file", "builtin", "many"})
	_, err := rootCmd.ExecuteC()
	if !errors.Is(err, benchmark.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	rootCmd.SetArgs([]string{"bench", "file", "builtin"})
	if _, err := rootCmd.ExecuteC(); err == nil {
		t.Fatalf("expected argument count error")
	}
}

func TestShowConfigFileOnly(t *testing.T) {
	configPath := useConfig(t, `{"clock": "wall", "backend": "mimetype"}`)
	t.Cleanup(func() {
		_ = showConfigCmd.Flags().Set("file", "false")
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--clock", "process", "show", "config", "--file"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	if _, err := rootCmd.ExecuteC(); err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Clock:        wall") {
		t.Fatalf("expected the file's clock without flag override, got %s", out)
	}
}

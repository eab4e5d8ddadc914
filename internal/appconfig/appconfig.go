// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/classifier"
	"github.com/mwiater/magicbench/internal/report"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the flat config file name accepted next to the binary.
	legacyConfigPath = "magicbench.json"
	// defaultLogFile is the log written when the config omits logFile.
	defaultLogFile = "magicbench.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug       bool     `json:"debug" mapstructure:"debug"`
	Backend     string   `json:"backend,omitempty" mapstructure:"backend"`
	Clock       string   `json:"clock,omitempty" mapstructure:"clock"`
	MIMEFlags   []string `json:"mimeFlags,omitempty" mapstructure:"mimeFlags"`
	ReadLimit   int      `json:"readLimit,omitempty" mapstructure:"readLimit"`
	OutputPath  string   `json:"output,omitempty" mapstructure:"output"`
	ExportPath  string   `json:"export,omitempty" mapstructure:"export"`
	LogFile     string   `json:"logFile,omitempty" mapstructure:"logFile"`
	NoColor     bool     `json:"noColor" mapstructure:"noColor"`
	KeepSamples bool     `json:"keepSamples" mapstructure:"keepSamples"`
	ConfigPath  string   `json:"-" mapstructure:"-"`
}

// BackendName returns the classifier backend, falling back to the default.
func (c Config) BackendName() string {
	if b := strings.TrimSpace(c.Backend); b != "" {
		return strings.ToLower(b)
	}
	return classifier.DefaultBackend
}

// ClockName returns the timing clock, falling back to the process clock.
func (c Config) ClockName() string {
	if name := strings.TrimSpace(c.Clock); name != "" {
		return strings.ToLower(name)
	}
	return benchmark.ClockProcess
}

// SessionOptions converts the configured flag names and read limit into classifier options.
func (c Config) SessionOptions() (classifier.Options, error) {
	flags, err := classifier.ParseFlags(c.MIMEFlags)
	if err != nil {
		return classifier.Options{}, err
	}
	opts := classifier.Options{Flags: flags}
	if c.ReadLimit > 0 {
		opts.ReadLimit = uint32(c.ReadLimit)
	}
	return opts, nil
}

// ReportPath returns the text report path, applying a default if not set.
func (c Config) ReportPath() string {
	if path := strings.TrimSpace(c.OutputPath); path != "" {
		return path
	}
	return report.DefaultPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	return defaultLogFile
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	switch c.ClockName() {
	case benchmark.ClockProcess, benchmark.ClockWall:
	default:
		return fmt.Errorf("invalid clock %q (want %q or %q)", c.Clock, benchmark.ClockProcess, benchmark.ClockWall)
	}
	if c.ReadLimit < 0 {
		return fmt.Errorf("readLimit must not be negative, got %d", c.ReadLimit)
	}
	if _, err := classifier.ParseFlags(c.MIMEFlags); err != nil {
		return fmt.Errorf("invalid mimeFlags: %w", err)
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, config.Validate()
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

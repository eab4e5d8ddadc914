package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:        %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Backend:      %s\n", cfg.BackendName())
	if opts, err := cfg.SessionOptions(); err == nil {
		fmt.Fprintf(out, "  Flags:        %s\n", opts.Flags)
	} else {
		fmt.Fprintf(out, "  Flags:        invalid (%v)\n", err)
	}
	fmt.Fprintf(out, "  Clock:        %s\n", cfg.ClockName())
	if cfg.ReadLimit > 0 {
		fmt.Fprintf(out, "  Read Limit:   %d bytes\n", cfg.ReadLimit)
	}
	fmt.Fprintf(out, "  Report:       %s\n", cfg.ReportPath())
	if cfg.ExportPath != "" {
		fmt.Fprintf(out, "  Export:       %s\n", cfg.ExportPath)
	}
	fmt.Fprintf(out, "  Log File:     %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  No Color:     %v\n", cfg.NoColor)
	fmt.Fprintf(out, "  Keep Samples: %v\n", cfg.KeepSamples)
}

// internal/commands/run.go
package magicbench

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/mwiater/magicbench/internal/appconfig"
	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/classifier"
	"github.com/mwiater/magicbench/internal/logging"
	"github.com/mwiater/magicbench/internal/report"
)

// configOrDefault returns the loaded config, or an empty one when the root
// pre-run did not execute (tests calling helpers directly).
func configOrDefault() *appconfig.Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	return &appconfig.Config{}
}

// requirePath fails with ErrPathMissing when path does not exist.
func requirePath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s %w", path, benchmark.ErrPathMissing)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// parseIterations parses the iteration-count argument.
func parseIterations(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: iteration count %q is not a number", benchmark.ErrUsage, arg)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", benchmark.ErrInvalidIterations, n)
	}
	return n, nil
}

// openSession opens a classification session on the configured backend and
// loads the database at dbPath. The caller owns the returned session.
func openSession(cfg *appconfig.Config, dbPath string) (classifier.Session, classifier.Options, error) {
	if dbPath != classifier.BuiltinDatabase {
		if err := requirePath(dbPath); err != nil {
			return nil, classifier.Options{}, err
		}
	}

	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, classifier.Options{}, err
	}
	backend := cfg.BackendName()
	session, err := classifier.Open(backend, opts)
	if err != nil {
		logging.LogStage("open", backend, "", err)
		return nil, opts, err
	}
	logging.LogStage("open", backend, "", opts.Flags)

	if err := session.Load(dbPath); err != nil {
		logging.LogStage("load", backend, dbPath, err)
		_ = session.Close()
		return nil, opts, err
	}
	logging.LogStage("load", backend, dbPath, nil)
	return session, opts, nil
}

func closeSession(cfg *appconfig.Config, session classifier.Session) {
	if err := session.Close(); err != nil {
		logging.LogStage("close", cfg.BackendName(), "", err)
		return
	}
	logging.LogStage("close", cfg.BackendName(), "", nil)
}

// newRun fills the parameters of a run record before measurement starts.
func newRun(cfg *appconfig.Config, opts classifier.Options, dbPath, target string, iterations int) benchmark.Run {
	return benchmark.Run{
		Backend:    cfg.BackendName(),
		Flags:      opts.Flags.String(),
		Database:   dbPath,
		Clock:      cfg.ClockName(),
		Iterations: iterations,
		Target:     target,
		StartedUTC: time.Now().UTC(),
		Host:       benchmark.CollectHostInfo(),
	}
}

func newRunner(cfg *appconfig.Config, session classifier.Session, iterations int) (*benchmark.Runner, error) {
	clock, err := benchmark.NewClock(cfg.ClockName())
	if err != nil {
		return nil, err
	}
	return &benchmark.Runner{
		Classifier:  session,
		Clock:       clock,
		Iterations:  iterations,
		KeepSamples: cfg.KeepSamples,
		Debug:       cfg.Debug,
	}, nil
}

func exportRun(console *report.Console, cfg *appconfig.Config, run benchmark.Run) error {
	if cfg.ExportPath == "" {
		return nil
	}
	path, err := benchmark.WriteRun(run, cfg.ExportPath)
	if err != nil {
		return err
	}
	console.Saved("results", path)
	return nil
}

// RunBenchmarkFile times iterations classifications of target against the
// database at dbPath and prints the summary to out.
func RunBenchmarkFile(out io.Writer, cfg *appconfig.Config, dbPath, target string, iterations int) error {
	if iterations < 1 {
		return fmt.Errorf("%w: got %d", benchmark.ErrInvalidIterations, iterations)
	}
	session, opts, err := openSession(cfg, dbPath)
	if err != nil {
		return err
	}
	defer closeSession(cfg, session)

	runner, err := newRunner(cfg, session, iterations)
	if err != nil {
		return err
	}

	console := report.NewConsole(out, cfg.NoColor)
	run := newRun(cfg, opts, dbPath, target, iterations)
	console.RunHeader(run)

	result, err := runner.RunFile(target)
	if err != nil {
		return err
	}
	run.Elapsed = time.Since(run.StartedUTC)
	run.Files = []benchmark.FileResult{result}

	console.Description(result.Path, result.Description)
	console.Summary(result.Summary)
	if cfg.Debug {
		console.Details(result.Summary)
	}
	return exportRun(console, cfg, run)
}

// RunBenchmarkDir benchmarks every file in dir, writes one report row per file
// and prints the statistics of the per-file means.
func RunBenchmarkDir(out io.Writer, cfg *appconfig.Config, dbPath, dir string, iterations int) error {
	if iterations < 1 {
		return fmt.Errorf("%w: got %d", benchmark.ErrInvalidIterations, iterations)
	}
	if err := requirePath(dir); err != nil {
		return err
	}

	session, opts, err := openSession(cfg, dbPath)
	if err != nil {
		return err
	}
	defer closeSession(cfg, session)

	runner, err := newRunner(cfg, session, iterations)
	if err != nil {
		return err
	}

	textReport, err := report.CreateText(cfg.ReportPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := textReport.Close(); err != nil {
			logging.LogEvent("close report %s: %v", textReport.Path(), err)
		}
	}()

	console := report.NewConsole(out, cfg.NoColor)
	run := newRun(cfg, opts, dbPath, dir, iterations)
	console.RunHeader(run)

	result, err := runner.RunDir(dir, textReport, console)
	if err != nil {
		return err
	}
	run.Elapsed = time.Since(run.StartedUTC)
	run.Files = result.Files
	run.Aggregate = &result.Aggregate

	console.Aggregate(result.Aggregate)
	console.Saved("report", textReport.Path())
	return exportRun(console, cfg, run)
}

// ClassifyFiles classifies each file once and prints its description.
func ClassifyFiles(out io.Writer, cfg *appconfig.Config, dbPath string, files []string) error {
	session, _, err := openSession(cfg, dbPath)
	if err != nil {
		return err
	}
	defer closeSession(cfg, session)

	console := report.NewConsole(out, cfg.NoColor)
	for _, file := range files {
		if err := requirePath(file); err != nil {
			return err
		}
		description, err := session.Classify(file)
		if err != nil {
			return err
		}
		logging.LogStage("classify", cfg.BackendName(), file, nil)
		console.Description(file, description)
	}
	return nil
}

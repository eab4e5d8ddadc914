// internal/benchmark/errors.go
package benchmark

import "errors"

var (
	// ErrUsage is returned when the command line does not match a command's usage.
	ErrUsage = errors.New("invalid arguments")

	// ErrPathMissing is returned when a database or sample path does not exist.
	ErrPathMissing = errors.New("does not exist")

	// ErrReportOpen is returned when the text report cannot be created.
	ErrReportOpen = errors.New("could not open report file")

	// ErrInvalidIterations is returned for an iteration count below one.
	ErrInvalidIterations = errors.New("iteration count must be at least 1")

	// ErrNoSamples is returned when a directory scan finds no file to benchmark.
	ErrNoSamples = errors.New("no files to benchmark")

	// ErrUnknownClock is returned for a clock name other than "process" or "wall".
	ErrUnknownClock = errors.New("unknown clock")
)

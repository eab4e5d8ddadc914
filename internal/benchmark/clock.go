// internal/benchmark/clock.go
package benchmark

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

const (
	// ClockProcess measures CPU time consumed by this process. Its resolution is
	// the kernel clock tick, so very fast calls often measure as zero.
	ClockProcess = "process"
	// ClockWall measures elapsed monotonic time.
	ClockWall = "wall"
)

// Clock reports a point in time, in seconds, from which durations are taken.
type Clock interface {
	Now() (float64, error)
}

// ProcessClock reads user+system CPU time of the current process.
type ProcessClock struct {
	proc *process.Process
}

// NewProcessClock returns a clock bound to the current process.
func NewProcessClock() (*ProcessClock, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("inspect current process: %w", err)
	}
	c := &ProcessClock{proc: proc}
	if _, err := c.Now(); err != nil {
		return nil, err
	}
	return c, nil
}

// Now returns the CPU seconds consumed so far.
func (c *ProcessClock) Now() (float64, error) {
	times, err := c.proc.Times()
	if err != nil {
		return 0, fmt.Errorf("read process cpu times: %w", err)
	}
	return times.User + times.System, nil
}

// WallClock measures seconds elapsed since it was created.
type WallClock struct {
	origin time.Time
}

// NewWallClock returns a monotonic wall clock.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// Now returns the seconds elapsed since the clock was created.
func (c *WallClock) Now() (float64, error) {
	return time.Since(c.origin).Seconds(), nil
}

// NewClock returns the clock registered under name. An empty name selects the
// process clock.
func NewClock(name string) (Clock, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ClockProcess:
		return NewProcessClock()
	case ClockWall:
		return NewWallClock(), nil
	default:
		return nil, fmt.Errorf("%w %q (want %q or %q)", ErrUnknownClock, name, ClockProcess, ClockWall)
	}
}

// internal/benchmark/types.go
package benchmark

import (
	"time"

	"github.com/mwiater/magicbench/internal/stats"
)

// Run is the complete record of one benchmark invocation.
type Run struct {
	Backend    string         `json:"backend"`
	Flags      string         `json:"flags"`
	Database   string         `json:"database"`
	Clock      string         `json:"clock"`
	Iterations int            `json:"iterations"`
	Target     string         `json:"target"`
	StartedUTC time.Time      `json:"startedUtc"`
	Elapsed    time.Duration  `json:"elapsed"`
	Host       HostInfo       `json:"host"`
	Files      []FileResult   `json:"files"`
	Aggregate  *stats.Summary `json:"aggregate,omitempty"`
}

// FileResult holds the samples and summary for a single classified file.
type FileResult struct {
	Name        string        `json:"name"`
	Path        string        `json:"path"`
	Size        int64         `json:"size"`
	Description string        `json:"description"`
	Summary     stats.Summary `json:"summary"`
	Samples     []float64     `json:"samples,omitempty"`
}

// DirResult holds every per-file result of a directory scan and the
// statistics of their means.
type DirResult struct {
	Dir       string        `json:"dir"`
	Files     []FileResult  `json:"files"`
	Means     []float64     `json:"means"`
	Aggregate stats.Summary `json:"aggregate"`
}

// HostInfo describes the machine a run was measured on.
type HostInfo struct {
	Hostname     string `json:"hostname"`
	OS           string `json:"os"`
	Platform     string `json:"platform"`
	Kernel       string `json:"kernel"`
	CPUModel     string `json:"cpuModel"`
	LogicalCores int    `json:"logicalCores"`
	MemoryTotal  uint64 `json:"memoryTotal"`
}

// RowWriter receives each file result as soon as it is measured.
type RowWriter interface {
	WriteRow(FileResult) error
}

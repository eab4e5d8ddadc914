// internal/benchmark/export.go
package benchmark

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultExportDir is where runs are saved when the export path is "auto".
var DefaultExportDir = filepath.Join("magicbenchData", "runs")

// DefaultExportPath builds a file name from the backend, target and iteration count.
func DefaultExportPath(run Run) string {
	target := strings.TrimSuffix(filepath.Base(run.Target), filepath.Ext(run.Target))
	name := fmt.Sprintf("%s-%s-%d.json", Slugify(run.Backend), Slugify(target), run.Iterations)
	return filepath.Join(DefaultExportDir, name)
}

// WriteRun writes run as indented JSON to path, creating parent directories.
// A path of "auto" is replaced with DefaultExportPath. The path written is returned.
func WriteRun(run Run, path string) (string, error) {
	if path == "auto" {
		path = DefaultExportPath(run)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating results directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(run); err != nil {
		return "", fmt.Errorf("error writing results to file: %w", err)
	}

	log.Printf("Benchmark results written to %s", path)
	return path, nil
}

// ReadRun loads a run previously written by WriteRun.
func ReadRun(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("read results: %w", err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("parse results %s: %w", path, err)
	}
	return run, nil
}

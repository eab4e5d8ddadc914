// internal/benchmark/benchmark.go
// Package benchmark times repeated classification calls and reduces the
// per-call durations to summary statistics.
package benchmark

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mwiater/magicbench/internal/stats"
)

// Classifier is the part of a classification session the runner needs.
type Classifier interface {
	Classify(path string) (string, error)
}

// Runner times Iterations classification calls per target. It is not safe for
// concurrent use; calls are made one after another so they never contend for
// the session.
type Runner struct {
	Classifier  Classifier
	Clock       Clock
	Iterations  int
	KeepSamples bool
	Debug       bool
}

// Time classifies target Iterations times and returns the elapsed seconds of
// each call along with the last description the classifier returned.
func (r *Runner) Time(target string) ([]float64, string, error) {
	if r.Iterations < 1 {
		return nil, "", fmt.Errorf("%w: got %d", ErrInvalidIterations, r.Iterations)
	}

	samples := make([]float64, r.Iterations)
	var description string
	for i := range samples {
		start, err := r.Clock.Now()
		if err != nil {
			return nil, "", err
		}
		desc, classifyErr := r.Classifier.Classify(target)
		end, err := r.Clock.Now()
		if classifyErr != nil {
			return nil, "", fmt.Errorf("iteration %d of %s: %w", i+1, target, classifyErr)
		}
		if err != nil {
			return nil, "", err
		}
		samples[i] = end - start
		description = desc

		if r.Debug {
			log.Printf("iteration %d/%d %s: %e s", i+1, r.Iterations, target, samples[i])
		}
	}
	return samples, description, nil
}

// RunFile benchmarks a single file.
func (r *Runner) RunFile(target string) (FileResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileResult{}, fmt.Errorf("%s %w", target, ErrPathMissing)
		}
		return FileResult{}, fmt.Errorf("stat %s: %w", target, err)
	}

	samples, description, err := r.Time(target)
	if err != nil {
		return FileResult{}, err
	}

	result := FileResult{
		Name:        filepath.Base(target),
		Path:        target,
		Size:        info.Size(),
		Description: description,
		Summary:     stats.Summarize(samples),
	}
	if r.KeepSamples {
		result.Samples = samples
	}
	return result, nil
}

// RunDir benchmarks every regular file directly inside dir, in name order, and
// hands each result to writers as soon as it is measured. Sub-directories are
// not descended into. The per-file means are reduced into the aggregate.
func (r *Runner) RunDir(dir string, writers ...RowWriter) (DirResult, error) {
	handle, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DirResult{}, fmt.Errorf("%s %w", dir, ErrPathMissing)
		}
		return DirResult{}, fmt.Errorf("open sample directory: %w", err)
	}
	defer handle.Close()

	entries, err := handle.ReadDir(-1)
	if err != nil {
		return DirResult{}, fmt.Errorf("read sample directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := DirResult{Dir: dir}
	for _, entry := range entries {
		name := entry.Name()
		if isDotEntry(name) || entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			log.Printf("skipping %s: not a regular file", path)
			continue
		}

		fileResult, err := r.RunFile(path)
		if err != nil {
			return DirResult{}, err
		}
		for _, w := range writers {
			if err := w.WriteRow(fileResult); err != nil {
				return DirResult{}, err
			}
		}
		result.Files = append(result.Files, fileResult)
		result.Means = append(result.Means, fileResult.Summary.Mean)
	}

	if len(result.Means) == 0 {
		return DirResult{}, fmt.Errorf("%s: %w", dir, ErrNoSamples)
	}
	result.Aggregate = stats.Summarize(result.Means)
	return result, nil
}

// isDotEntry reports whether name is the current- or parent-directory marker.
func isDotEntry(name string) bool {
	return name == "." || name == ".."
}

// Slugify converts a string into a "slug" format,
// including replacing colons (:) with underscores (_).
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ":", "_")
	re := regexp.MustCompile(`[^a-z0-9_]+`)
	s = re.ReplaceAllString(s, "-")
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")

	return s
}

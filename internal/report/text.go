// internal/report/text.go
// Package report renders benchmark results as a plain-text report file, a
// console summary and JSON.
package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/magicbench/internal/benchmark"
)

// DefaultPath is the report file written by directory benchmarks.
const DefaultPath = "output"

const (
	nameWidth  = 40
	valueWidth = 15
)

// TextReport writes one fixed-width row per benchmarked file after a two-row header.
type TextReport struct {
	path string
	file *os.File
	w    *bufio.Writer
}

// CreateText truncates or creates the report at path and writes its header.
func CreateText(path string) (*TextReport, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", benchmark.ErrReportOpen, path, err)
	}
	r := &TextReport{path: path, file: file, w: bufio.NewWriter(file)}
	if _, err := r.w.WriteString(Header()); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return r, nil
}

// Header returns the two header rows of the text report.
func Header() string {
	titles := fmt.Sprintf("%-*s %-*s %-*s %-*s", nameWidth, "FILE", valueWidth, "MEAN (s)", valueWidth, "VARIANCE (s^2)", valueWidth, "STD (s)")
	rule := strings.Join([]string{
		strings.Repeat("-", nameWidth),
		strings.Repeat("-", valueWidth),
		strings.Repeat("-", valueWidth),
		strings.Repeat("-", valueWidth),
	}, " ")
	return strings.TrimRight(titles, " ") + "\n" + rule + "\n"
}

// FormatRow renders a single report row with every statistic in scientific notation.
func FormatRow(r benchmark.FileResult) string {
	return fmt.Sprintf("%-*s %-*s %-*s %s\n",
		nameWidth, r.Name,
		valueWidth, fmt.Sprintf("%e", r.Summary.Mean),
		valueWidth, fmt.Sprintf("%e", r.Summary.Variance),
		fmt.Sprintf("%e", r.Summary.Std),
	)
}

// WriteRow appends the row for r.
func (r *TextReport) WriteRow(result benchmark.FileResult) error {
	if _, err := r.w.WriteString(FormatRow(result)); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

// Path returns the location of the report file.
func (r *TextReport) Path() string {
	return r.path
}

// Close flushes buffered rows and closes the file.
func (r *TextReport) Close() error {
	flushErr := r.w.Flush()
	closeErr := r.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush report: %w", flushErr)
	}
	return closeErr
}

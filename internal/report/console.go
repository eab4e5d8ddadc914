// internal/report/console.go
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/stats"
)

// Console prints results for a human watching the run.
type Console struct {
	out   io.Writer
	plain bool

	heading lipgloss.Style
	label   lipgloss.Style
	ok      func(a ...interface{}) string
	fail    func(a ...interface{}) string
}

// NewConsole writes to out. When plain is true no ANSI styling is emitted.
func NewConsole(out io.Writer, plain bool) *Console {
	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed)
	if plain {
		okColor.DisableColor()
		failColor.DisableColor()
	}
	return &Console{
		out:     out,
		plain:   plain,
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Padding(0, 1),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ok:      okColor.SprintFunc(),
		fail:    failColor.SprintFunc(),
	}
}

func (c *Console) render(style lipgloss.Style, s string) string {
	if c.plain {
		return s
	}
	return style.Render(s)
}

// Heading prints a styled section title.
func (c *Console) Heading(title string) {
	fmt.Fprintln(c.out, c.render(c.heading, title))
}

// RunHeader prints the parameters of a run before it starts.
func (c *Console) RunHeader(run benchmark.Run) {
	c.Heading("magicbench")
	c.field("Backend", fmt.Sprintf("%s (%s)", run.Backend, run.Flags))
	c.field("Database", run.Database)
	c.field("Target", run.Target)
	c.field("Iterations", fmt.Sprintf("%d", run.Iterations))
	c.field("Clock", run.Clock)
	if run.Host.CPUModel != "" {
		c.field("CPU", fmt.Sprintf("%s (%d cores)", run.Host.CPUModel, run.Host.LogicalCores))
	}
	if run.Host.MemoryTotal > 0 {
		c.field("Memory", humanize.IBytes(run.Host.MemoryTotal))
	}
	fmt.Fprintln(c.out)
}

func (c *Console) field(name, value string) {
	fmt.Fprintf(c.out, "%s %s\n", c.render(c.label, fmt.Sprintf("%-11s", name+":")), value)
}

// Summary prints the mean, variance and standard deviation of a sample set.
func (c *Console) Summary(s stats.Summary) {
	fmt.Fprintf(c.out, "MEAN: %e s.\n", s.Mean)
	fmt.Fprintf(c.out, "VARIANCE: %e s^2.\n", s.Variance)
	fmt.Fprintf(c.out, "STD: %e s.\n", s.Std)
}

// Details prints the order statistics that accompany a summary.
func (c *Console) Details(s stats.Summary) {
	fmt.Fprintf(c.out, "MIN: %e s. MEDIAN: %e s. P95: %e s. MAX: %e s.\n", s.Min, s.Median, s.P95, s.Max)
}

// WriteRow prints a per-file result as soon as it is measured.
func (c *Console) WriteRow(r benchmark.FileResult) error {
	fmt.Fprintf(c.out, "%s %s (%s)\n", c.ok("OK"), r.Name, humanize.Bytes(uint64(r.Size)))
	c.Summary(r.Summary)
	return nil
}

// Aggregate prints the statistics of per-file means for a directory run.
func (c *Console) Aggregate(s stats.Summary) {
	fmt.Fprintln(c.out)
	c.Heading(fmt.Sprintf("Summary over %d files", s.Count))
	fmt.Fprintf(c.out, "AVERAGE OF MEANS: %e s.\n", s.Mean)
	fmt.Fprintf(c.out, "VARIANCE OF MEANS: %e s^2.\n", s.Variance)
	fmt.Fprintf(c.out, "STD OF MEANS: %e s.\n", s.Std)
}

// Description prints the classifier output for a file.
func (c *Console) Description(path, description string) {
	fmt.Fprintf(c.out, "%s: %s\n", path, description)
}

// Failure prints err in red.
func (c *Console) Failure(err error) {
	fmt.Fprintf(c.out, "%s %v\n", c.fail("FAIL"), err)
}

// Saved reports where an artifact was written.
func (c *Console) Saved(kind, path string) {
	fmt.Fprintf(c.out, "%s %s written to %s\n", c.ok("OK"), kind, path)
}

// internal/viewer/viewer.go
// Package viewer browses a saved benchmark run in the terminal.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/util"
)

const descriptionWidth = 36

var (
	baseStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Padding(0, 1)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	run        benchmark.Run
	table      table.Model
	showDetail bool
}

func newModel(run benchmark.Run) model {
	columns := []table.Column{
		{Title: "File", Width: 24},
		{Title: "Size", Width: 9},
		{Title: "Mean (s)", Width: 13},
		{Title: "Std (s)", Width: 13},
		{Title: "Median (s)", Width: 13},
		{Title: "P95 (s)", Width: 13},
		{Title: "Description", Width: descriptionWidth},
	}

	rows := make([]table.Row, 0, len(run.Files))
	for _, f := range run.Files {
		rows = append(rows, table.Row{
			util.TruncateRunes(f.Name, 23),
			humanize.Bytes(uint64(f.Size)),
			fmt.Sprintf("%e", f.Summary.Mean),
			fmt.Sprintf("%e", f.Summary.Std),
			fmt.Sprintf("%e", f.Summary.Median),
			fmt.Sprintf("%e", f.Summary.P95),
			util.TruncateRunes(util.FirstLine(f.Description), descriptionWidth-1),
		})
	}

	height := len(rows) + 1
	if height > 15 {
		height = 15
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(styles)

	return model{run: run, table: t}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter", " ":
			m.showDetail = !m.showDetail
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("magicbench: %s (%s, %d iterations, %s clock)", m.run.Target, m.run.Backend, m.run.Iterations, m.run.Clock)))
	b.WriteString("\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.run.Aggregate != nil {
		b.WriteString(detailStyle.Render(fmt.Sprintf("Average of means: %e s   Std of means: %e s", m.run.Aggregate.Mean, m.run.Aggregate.Std)))
		b.WriteString("\n")
	}
	if m.showDetail {
		if f, ok := m.selected(); ok {
			b.WriteString(detailStyle.Render(detail(f)))
			b.WriteString("\n")
		}
	}
	b.WriteString(helpStyle.Render("↑/↓ move • enter details • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) selected() (benchmark.FileResult, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.run.Files) {
		return benchmark.FileResult{}, false
	}
	return m.run.Files[i], true
}

func detail(f benchmark.FileResult) string {
	s := f.Summary
	return fmt.Sprintf("%s\n%s\nsamples=%d mean=%e variance=%e std=%e min=%e max=%e",
		f.Path, f.Description, s.Count, s.Mean, s.Variance, s.Std, s.Min, s.Max)
}

// Run opens the interactive viewer for run and blocks until the user quits.
func Run(run benchmark.Run, opts ...tea.ProgramOption) error {
	if len(run.Files) == 0 {
		return fmt.Errorf("run contains no file results")
	}
	_, err := tea.NewProgram(newModel(run), opts...).Run()
	return err
}

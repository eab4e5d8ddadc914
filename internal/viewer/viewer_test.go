package viewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/stats"
)

func sampleRun() benchmark.Run {
	return benchmark.Run{
		Backend:    "mimetype",
		Target:     "samples",
		Iterations: 3,
		Clock:      "wall",
		Files: []benchmark.FileResult{
			{Name: "a.pdf", Path: "samples/a.pdf", Size: 10, Description: "application/pdf; charset=binary\n- application/octet-stream; charset=binary", Summary: stats.Summarize([]float64{1, 2, 3})},
			{Name: "b.txt", Path: "samples/b.txt", Size: 5, Description: "text/plain; charset=utf-8", Summary: stats.Summarize([]float64{4})},
		},
		Aggregate: func() *stats.Summary { s := stats.Summarize([]float64{2, 4}); return &s }(),
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel(sampleRun())
	view := m.View()
	for _, want := range []string{"a.pdf", "b.txt", "2.000000e+00", "Average of means: 3.000000e+00"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "samples/a.pdf") {
		t.Fatalf("details should be hidden until toggled")
	}
}

func TestEnterTogglesDetail(t *testing.T) {
	var m tea.Model = newModel(sampleRun())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "samples/a.pdf") {
		t.Fatalf("expected details of the selected file after enter")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if strings.Contains(m.View(), "samples/a.pdf") {
		t.Fatalf("expected details hidden after second enter")
	}
}

func TestQuitKey(t *testing.T) {
	m := newModel(sampleRun())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestRunRejectsEmptyRun(t *testing.T) {
	if err := Run(benchmark.Run{}); err == nil {
		t.Fatalf("expected error for a run without files")
	}
}

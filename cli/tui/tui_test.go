package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pithecene-io/packetcount/types"
)

func sampleSummary(n int) *types.FileSummary {
	s := &types.FileSummary{
		Path:      "/data/capture.packets",
		Status:    types.FileCompleted,
		BytesRead: 4096,
	}
	for i := range n {
		s.Streams = append(s.Streams, types.StreamSummary{
			Stream:         types.StreamID(i + 1),
			Accepted:       uint32(i + 2),
			Executed:       1,
			ExecutedShares: 100,
		})
	}
	return s
}

func press(t *testing.T, m tea.Model, msg tea.KeyMsg) SummaryModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SummaryModel)
	if !ok {
		t.Fatalf("Update returned %T, want SummaryModel", next)
	}
	return sm
}

func TestSummaryModel_Navigation(t *testing.T) {
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	tests := []struct {
		name    string
		streams int
		keys    []tea.KeyMsg
		want    int
	}{
		{"starts on first", 3, nil, 0},
		{"down moves", 3, []tea.KeyMsg{down}, 1},
		{"down stops at last", 3, []tea.KeyMsg{down, down, down, down}, 2},
		{"up stops at first", 3, []tea.KeyMsg{up, up}, 0},
		{"down then up", 3, []tea.KeyMsg{down, down, up}, 1},
		{"no streams", 0, []tea.KeyMsg{down}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSummaryModel(sampleSummary(tt.streams))
			for _, k := range tt.keys {
				m = press(t, m, k)
			}
			if got := m.Cursor(); got != tt.want {
				t.Errorf("Cursor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummaryModel_Quit(t *testing.T) {
	m := NewSummaryModel(sampleSummary(1))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if got := next.View(); got != "" {
		t.Errorf("View after quit = %q, want empty", got)
	}
}

func TestRenderStatic(t *testing.T) {
	out := RenderStatic(sampleSummary(2))

	for _, want := range []string{"Capture Summary", "/data/capture.packets", "completed", "Stream 1", "Stream 2", "System Event (S)", "Accepted (A)", "Executed (E)"} {
		if !strings.Contains(out, want) {
			t.Errorf("static render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStatic_Paginates(t *testing.T) {
	out := RenderStatic(sampleSummary(streamsPerPage + 2))
	if strings.Contains(out, "Stream 5") {
		t.Errorf("first page should not include Stream 5:\n%s", out)
	}
	if !strings.Contains(out, "stream 1 of 6") {
		t.Errorf("missing position line:\n%s", out)
	}
}

func TestRenderStatic_Aborted(t *testing.T) {
	s := sampleSummary(1)
	s.Status = types.FileAborted
	s.Reason = "malformed length 12 on stream 1"

	out := RenderStatic(s)
	if !strings.Contains(out, "aborted") || !strings.Contains(out, "malformed length 12") {
		t.Errorf("aborted render missing status or reason:\n%s", out)
	}
}

func TestRenderStatic_NoStreams(t *testing.T) {
	out := RenderStatic(sampleSummary(0))
	if !strings.Contains(out, "(no streams)") {
		t.Errorf("expected empty marker:\n%s", out)
	}
}

func TestRun_NilSummary(t *testing.T) {
	if err := Run(nil); err == nil {
		t.Fatal("expected error for nil summary")
	}
}

func TestStatusStyle(t *testing.T) {
	if StatusStyle("completed").GetForeground() != SuccessStyle.GetForeground() {
		t.Error("completed should use success style")
	}
	if StatusStyle("aborted").GetForeground() != ErrorStyle.GetForeground() {
		t.Error("aborted should use error style")
	}
}

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/packetcount/types"
)

// streamsPerPage bounds how many stream boxes are drawn at once.
const streamsPerPage = 4

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous stream"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next stream"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SummaryModel is a Bubble Tea model over one file summary.
type SummaryModel struct {
	summary  *types.FileSummary
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewSummaryModel creates a viewer positioned on the first stream.
func NewSummaryModel(summary *types.FileSummary) SummaryModel {
	return SummaryModel{summary: summary}
}

// Cursor returns the index of the selected stream.
func (m SummaryModel) Cursor() int { return m.cursor }

// Init implements tea.Model.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.summary.Streams)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m SummaryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Capture Summary"))
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.summary.Streams) == 0 {
		b.WriteString(ValueStyle.Render("(no streams)"))
	} else {
		b.WriteString(m.renderStreams())
	}

	help := HelpStyle.Render("↑/↓ move between streams • q quit")
	return b.String() + "\n" + help
}

func (m SummaryModel) renderHeader() string {
	s := m.summary
	status := string(s.Status)
	rows := []string{
		m.renderField("File", s.Path),
		LabelStyle.Render("Status") + StatusStyle(status).Render(status),
		m.renderField("Bytes read", fmt.Sprintf("%d", s.BytesRead)),
		m.renderField("Streams", fmt.Sprintf("%d", len(s.Streams))),
	}
	if s.Reason != "" {
		rows = append(rows, LabelStyle.Render("Reason")+ErrorStyle.Render(s.Reason))
	}
	if s.TrailingBytes > 0 {
		rows = append(rows, LabelStyle.Render("Trailing bytes")+WarningStyle.Render(fmt.Sprintf("%d", s.TrailingBytes)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m SummaryModel) renderField(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// renderStreams draws the page of stream boxes containing the cursor.
func (m SummaryModel) renderStreams() string {
	streams := m.summary.Streams
	first := (m.cursor / streamsPerPage) * streamsPerPage
	last := min(first+streamsPerPage, len(streams))

	boxes := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		boxes = append(boxes, m.renderStreamBox(streams[i], i == m.cursor))
	}

	pos := fmt.Sprintf("stream %d of %d", m.cursor+1, len(streams))
	return lipgloss.JoinVertical(lipgloss.Left, boxes...) + "\n" + HelpStyle.Render(pos)
}

func (m SummaryModel) renderStreamBox(s types.StreamSummary, selected bool) string {
	style := StreamBoxStyle
	if selected {
		style = SelectedBoxStyle
	}

	lines := []string{TitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("Stream %d", s.Stream))}
	for _, k := range types.Kinds() {
		label := fmt.Sprintf("%s (%c)", k, k.Code())
		lines = append(lines, m.renderField(label, fmt.Sprintf("%d", s.Count(k))))
	}
	lines = append(lines, m.renderField("Shares", fmt.Sprintf("%d", s.ExecutedShares)))
	if s.Unknown > 0 {
		lines = append(lines, LabelStyle.Render("Unknown")+WarningStyle.Render(fmt.Sprintf("%d", s.Unknown)))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run starts the summary viewer and blocks until the user quits.
func Run(summary *types.FileSummary) error {
	if summary == nil {
		return errors.New("no summary to display")
	}
	p := tea.NewProgram(NewSummaryModel(summary), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderStatic renders the viewer once without a terminal program.
func RenderStatic(summary *types.FileSummary) string {
	m := NewSummaryModel(summary)
	m.width = 80
	m.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(m.View())
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/parlog/reconcile"
)

// RecordModel is a Bubble Tea model showing a single command's record.
type RecordModel struct {
	record   reconcile.CommandRecord
	quitting bool
}

// NewRecordModel creates a record model.
func NewRecordModel(rec reconcile.CommandRecord) RecordModel {
	return RecordModel{record: rec}
}

// Init implements tea.Model.
func (m RecordModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m RecordModel) View() string {
	if m.quitting {
		return ""
	}

	rec := m.record
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Command"))
	b.WriteString("\n")
	b.WriteString(ValueStyle.Render(rec.Command))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"State:", StateStyle(rec.State).Render(rec.State.Label())},
		{"Attempts:", ValueStyle.Render(fmt.Sprintf("%d", rec.Attempts))},
		{"Failures:", ValueStyle.Render(fmt.Sprintf("%d", rec.Failures))},
	}
	for _, r := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(r[0]), r[1]))
		b.WriteString("\n")
	}

	return BoxStyle.Render(b.String()) + "\n" + HelpStyle.Render("Press q or Ctrl+C to quit")
}

// RunRecordTUI runs the record TUI for a reconcile.CommandRecord.
func RunRecordTUI(data any) error {
	var rec reconcile.CommandRecord
	switch d := data.(type) {
	case reconcile.CommandRecord:
		rec = d
	case *reconcile.CommandRecord:
		rec = *d
	default:
		return fmt.Errorf("command TUI expects reconcile.CommandRecord, got %T", data)
	}
	p := tea.NewProgram(NewRecordModel(rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

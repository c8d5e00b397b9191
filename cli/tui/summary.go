package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justapithecus/parlog/reconcile"
)

// failedAnyLabel names the pseudo-bucket of commands that failed at least once.
const failedAnyLabel = "failed_any"

type bucket struct {
	label    string
	state    reconcile.State // empty for failed_any
	commands []string
}

func bucketsOf(res *reconcile.Result) []bucket {
	out := make([]bucket, 0, len(reconcile.States())+1)
	for _, st := range reconcile.States() {
		out = append(out, bucket{label: st.Label(), state: st, commands: res.Commands(st)})
	}
	return append(out, bucket{label: failedAnyLabel, commands: res.FailedAny()})
}

// SummaryModel is a Bubble Tea model that shows the bucket counts and lets
// the user page through the commands of one bucket at a time.
type SummaryModel struct {
	buckets  []bucket
	selected int
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
}

// NewSummaryModel creates a summary model for res.
func NewSummaryModel(res *reconcile.Result) SummaryModel {
	return SummaryModel{buckets: bucketsOf(res)}
}

// Selected returns the label of the bucket being browsed.
func (m SummaryModel) Selected() string {
	return m.buckets[m.selected].label
}

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
		listHeight := msg.Height - lipgloss.Height(m.header()) - 2
		if listHeight < 1 {
			listHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, listHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = listHeight
		}
		m.viewport.SetContent(m.commandList())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.selected = (m.selected + 1) % len(m.buckets)
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.selected = (m.selected + len(m.buckets) - 1) % len(m.buckets)
			m.refresh()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *SummaryModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.commandList())
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m SummaryModel) View() string {
	if m.quitting {
		return ""
	}

	list := m.commandList()
	if m.ready {
		list = m.viewport.View()
	}

	help := HelpStyle.Render("tab/← → switch bucket • ↑/↓ scroll • q quit")
	return m.header() + "\n" + list + "\n" + help
}

func (m SummaryModel) header() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Joblog Reconciliation"))
	b.WriteString("\n")

	boxes := make([]string, 0, len(m.buckets))
	for i, bk := range m.buckets {
		boxes = append(boxes, m.renderStatBox(bk, i == m.selected))
	}
	half := (len(boxes) + 1) / 2
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes[:half]...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes[half:]...))
	b.WriteString("\n\n")

	sel := m.buckets[m.selected]
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.colorOf(sel)).
		Render(fmt.Sprintf("%s (%d)", sel.label, len(sel.commands))))
	return b.String()
}

func (m SummaryModel) commandList() string {
	cmds := m.buckets[m.selected].commands
	if len(cmds) == 0 {
		return LabelStyle.Width(0).Render("(no commands)")
	}
	return strings.Join(cmds, "\n")
}

func (m SummaryModel) colorOf(bk bucket) lipgloss.Color {
	if bk.state == "" {
		return ErrorColor
	}
	return StateColor(bk.state)
}

func (m SummaryModel) renderStatBox(bk bucket, selected bool) string {
	color := m.colorOf(bk)
	boxStyle := StatBoxStyle.BorderForeground(color)
	if selected {
		boxStyle = boxStyle.Border(lipgloss.ThickBorder())
	}

	valueStr := StatValueStyle.Foreground(color).Render(fmt.Sprintf("%d", len(bk.commands)))
	labelStr := StatLabelStyle.Render(strings.ReplaceAll(bk.label, "_", " "))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, valueStr, labelStr))
}

// RunSummaryTUI runs the summary TUI for a *reconcile.Result.
func RunSummaryTUI(data any) error {
	res, ok := data.(*reconcile.Result)
	if !ok {
		return fmt.Errorf("summary TUI expects *reconcile.Result, got %T", data)
	}
	p := tea.NewProgram(NewSummaryModel(res), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderSummaryStatic renders the summary without a full TUI.
func RenderSummaryStatic(res *reconcile.Result) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(NewSummaryModel(res).View())
}

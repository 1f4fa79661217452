package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"slovobor/internal/widget"
)

var (
	colorAccent = lipgloss.Color("#89b4fa")
	colorError  = lipgloss.Color("#f38ba8")
	colorWait   = lipgloss.Color("#f9e2af")
	colorMuted  = lipgloss.Color("#7f849c")

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	inputStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	wordStyle  = lipgloss.NewStyle().MarginTop(1)
)

// redrawMsg is sent whenever the widget changes the view.
type redrawMsg struct{}

type model struct {
	view  *widget.MemoryView
	state func() widget.State
	width int
}

func newModel(view *widget.MemoryView, state func() widget.State) model {
	return model{view: view, state: state, width: 60}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case redrawMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		m.view.Submit()
	case "ctrl+o":
		opts := m.view.Snapshot().Options
		opts.Offensive = !opts.Offensive
		m.view.SetOptions(opts)
	case "ctrl+n":
		opts := m.view.Snapshot().Options
		opts.NounsOnly = !opts.NounsOnly
		m.view.SetOptions(opts)
	case "backspace":
		if r := []rune(m.view.Value()); len(r) > 0 {
			m.view.SetValue(string(r[:len(r)-1]))
		}
	case "ctrl+u":
		m.view.SetValue("")
	default:
		var typed string
		switch msg.Type {
		case tea.KeyRunes:
			typed = string(msg.Runes)
		case tea.KeySpace:
			typed = " "
		}
		if typed == "" {
			return m, nil
		}
		// The input accepts no more than a browser field with maxlength would.
		if next := m.view.Value() + typed; widget.CodeUnits(next) <= widget.MaxLength {
			m.view.SetValue(next)
		}
	}
	return m, nil
}

func (m model) View() string {
	v := m.view.Snapshot()
	width := max(m.width-4, 20)

	cursor := ""
	input := inputStyle
	if v.Focused {
		cursor = "_"
		input = input.BorderForeground(colorAccent)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Словобор"))
	b.WriteString("\n")
	b.WriteString(input.Width(width).Render(v.Input + cursor))
	b.WriteString("\n")
	b.WriteString(checkbox(v.Options.Offensive) + " грубые слова   " + checkbox(v.Options.NounsOnly) + " только существительные\n")
	b.WriteString(statusStyle(m.state()).Render(v.Status))
	if len(v.Output) > 0 {
		b.WriteString("\n")
		b.WriteString(wordStyle.Width(width).Render(strings.Join(v.Output, " ")))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter search · ctrl+o offensive · ctrl+n nouns · ctrl+u clear · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func statusStyle(s widget.State) lipgloss.Style {
	switch s {
	case widget.StateError:
		return lipgloss.NewStyle().Foreground(colorError)
	case widget.StateWaiting:
		return lipgloss.NewStyle().Foreground(colorWait)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slovobor/internal/widget"
)

func testModel(t *testing.T) (model, *widget.MemoryView) {
	t.Helper()
	view := widget.NewMemoryView("")
	return newModel(view, func() widget.State { return widget.StateReady }), view
}

func press(t *testing.T, m model, msg tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func TestTypingEditsInput(t *testing.T) {
	m, view := testModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("кот")})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ик")})
	assert.Equal(t, "кот ик", view.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "кот и", view.Value())

	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, view.Value())
}

func TestTypingStopsAtMaxLength(t *testing.T) {
	m, view := testModel(t)
	for i := 0; i < widget.MaxLength+5; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("я")})
	}
	assert.Equal(t, widget.MaxLength, widget.CodeUnits(view.Value()))
}

func TestEnterSubmits(t *testing.T) {
	m, view := testModel(t)
	submitted := 0
	view.OnSubmit(func() { submitted++ })
	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, submitted)
}

func TestTogglesFlipOptions(t *testing.T) {
	m, view := testModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.True(t, view.Offensive())
	assert.False(t, view.NounsOnly())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.False(t, view.Offensive())
	assert.True(t, view.NounsOnly())
	assert.Contains(t, m.View(), "[x] только существительные")
}

func TestQuitKeys(t *testing.T) {
	m, _ := testModel(t)
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := press(t, m, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewRendersWidget(t *testing.T) {
	m, view := testModel(t)
	view.SetValue("тест1")
	view.SetText("found 2")
	view.Append("тестик")
	view.Append("тест")

	out := m.View()
	assert.Contains(t, out, "тест1")
	assert.Contains(t, out, "found 2")
	assert.Contains(t, out, "тестик тест")
}

func TestWindowSize(t *testing.T) {
	m, _ := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, next.(model).width)
}

func TestLinkFragment(t *testing.T) {
	assert.Equal(t, "%D0%BA%D0%BE%D1%82", linkFragment("https://slovobor.test/#%D0%BA%D0%BE%D1%82"))
	assert.Equal(t, "котик", linkFragment("котик"))
	assert.Empty(t, linkFragment("https://slovobor.test/#"))
	assert.Empty(t, linkFragment(""))
}

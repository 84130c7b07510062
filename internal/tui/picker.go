package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/blanktimer/internal/models"
)

// Selector is one bounded wheel: a value in [0, Max].
type Selector struct {
	Label string
	Max   int
	Value int
}

// Inc moves the selector up, stopping at Max.
func (s *Selector) Inc() {
	if s.Value < s.Max {
		s.Value++
	}
}

// Dec moves the selector down, stopping at 0.
func (s *Selector) Dec() {
	if s.Value > 0 {
		s.Value--
	}
}

// startTimerMsg is emitted when the user confirms a duration.
type startTimerMsg struct {
	duration models.Duration
}

type pickerKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Start key.Binding
	Quit  key.Binding
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Start, k.Quit}
}

var pickerKeys = pickerKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "more")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "less")),
	Left:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev")),
	Right: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next")),
	Start: key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// PickerModel collects hours, minutes and seconds.
type PickerModel struct {
	selectors [3]Selector
	focus     int
}

// NewPickerModel returns a picker with every selector at zero.
func NewPickerModel() *PickerModel {
	return &PickerModel{
		selectors: [3]Selector{
			{Label: "Hour", Max: models.MaxHours},
			{Label: "Min", Max: models.MaxMinutes},
			{Label: "Sec", Max: models.MaxSeconds},
		},
	}
}

// Duration snapshots the current selection.
func (m *PickerModel) Duration() models.Duration {
	return models.NewDuration(m.selectors[0].Value, m.selectors[1].Value, m.selectors[2].Value)
}

// Init implements tea.Model
func (m *PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, pickerKeys.Up):
		m.selectors[m.focus].Inc()
	case key.Matches(keyMsg, pickerKeys.Down):
		m.selectors[m.focus].Dec()
	case key.Matches(keyMsg, pickerKeys.Left):
		m.focus = (m.focus + len(m.selectors) - 1) % len(m.selectors)
	case key.Matches(keyMsg, pickerKeys.Right):
		m.focus = (m.focus + 1) % len(m.selectors)
	case key.Matches(keyMsg, pickerKeys.Start):
		d := m.Duration()
		return m, func() tea.Msg { return startTimerMsg{duration: d} }
	case key.Matches(keyMsg, pickerKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m *PickerModel) View() string {
	columns := make([]string, len(m.selectors))
	for i, s := range m.selectors {
		style := selectorStyle
		if i == m.focus {
			style = selectedSelectorStyle
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Center,
			selectorLabelStyle.Render(s.Label),
			style.Render(fmt.Sprintf("%02d", s.Value)),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns[0], "  ", columns[1], "  ", columns[2])
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/widget"
)

var widgetStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(mutedColor).
	Padding(0, 1)

type widgetTickMsg time.Time

// WidgetModel is a passive host: it redraws from whichever timeline entry
// has most recently elapsed and requests a new timeline when the current
// one runs out.
type WidgetModel struct {
	provider *widget.Provider
	timeline widget.Timeline
	entry    widget.Entry
	ring     progress.Model
	now      func() time.Time
	requests int
}

// NewWidgetModel creates a widget host over provider.
func NewWidgetModel(provider *widget.Provider, theme config.ThemeConfig) *WidgetModel {
	m := &WidgetModel{
		provider: provider,
		ring: progress.New(
			progress.WithSolidFill(theme.Green),
			progress.WithoutPercentage(),
			progress.WithWidth(12),
		),
		now: time.Now,
	}
	m.entry = provider.Placeholder(m.now())
	return m
}

// Init implements tea.Model
func (m *WidgetModel) Init() tea.Cmd {
	m.refresh(m.now())
	return m.tickCmd()
}

func (m *WidgetModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return widgetTickMsg(t)
	})
}

// refresh requests a new timeline if needed and picks the current entry.
func (m *WidgetModel) refresh(now time.Time) {
	if m.timeline.Expired(now) {
		m.timeline = m.provider.Timeline(now)
		m.requests++
	}
	if e, ok := m.timeline.EntryAt(now); ok {
		m.entry = e
	}
}

// Update implements tea.Model
func (m *WidgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case widgetTickMsg:
		m.refresh(time.Time(msg))
		return m, m.tickCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m *WidgetModel) View() string {
	window := m.provider.Window
	if window <= 0 {
		window = widget.DefaultWindow
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		clockStyle.Render(m.entry.Label()),
		"  ",
		m.ring.ViewAs(m.entry.Fraction(window)),
		" ",
		m.entry.Icon(),
	)
	return widgetStyle.Render(row)
}

// RunWidget runs the widget host until the user quits.
func RunWidget(provider *widget.Provider, theme config.ThemeConfig) error {
	p := tea.NewProgram(NewWidgetModel(provider, theme))
	_, err := p.Run()
	return err
}

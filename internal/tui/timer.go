package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/models"
)

// tickInterval is the countdown cadence.
const tickInterval = time.Second

// ForegroundMsg tells the timer that the process has returned to the
// foreground and should resynchronize against the stored end time.
type ForegroundMsg struct {
	At time.Time
}

// tickMsg carries the generation of the tick chain that produced it, so a
// chain belonging to a replaced timer dies out.
type tickMsg struct {
	gen int
	at  time.Time
}

// newTimerMsg asks the app to go back to the picker.
type newTimerMsg struct{}

type timerKeyMap struct {
	Toggle   key.Binding
	Cancel   key.Binding
	NewTimer key.Binding
	Quit     key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Cancel, k.NewTimer, k.Quit}
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Toggle:   key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", countdown.LabelPause)),
		Cancel:   key.NewBinding(key.WithKeys("x", "c"), key.WithHelp("x", countdown.LabelCancel)),
		NewTimer: key.NewBinding(key.WithKeys("n", "+"), key.WithHelp("n", countdown.LabelNewTimer)),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

// TimerModel renders one countdown and forwards controls to its engine.
type TimerModel struct {
	engine   *countdown.Engine
	colors   bandColors
	bars     map[countdown.Band]progress.Model
	keys     timerKeyMap
	help     help.Model
	gen      int
	lastTick time.Time
	width    int
}

// NewTimerModel wraps engine. gen identifies this timer's tick chain.
func NewTimerModel(engine *countdown.Engine, colors bandColors, gen int) *TimerModel {
	bars := make(map[countdown.Band]progress.Model, len(colors))
	for band, color := range colors {
		bars[band] = progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		)
	}

	m := &TimerModel{
		engine: engine,
		colors: colors,
		bars:   bars,
		keys:   newTimerKeyMap(),
		help:   help.New(),
		gen:    gen,
	}
	m.syncKeys()
	return m
}

// Init implements tea.Model
func (m *TimerModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *TimerModel) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// Update implements tea.Model
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.engine.TickAfter(m.lastTick, msg.at)
		m.lastTick = msg.at
		m.syncKeys()
		return m, m.tickCmd()

	case ForegroundMsg:
		m.engine.Resynchronize(msg.At)
		m.syncKeys()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			_ = m.engine.Toggle()
		case key.Matches(msg, m.keys.Cancel):
			_ = m.engine.Cancel()
		case key.Matches(msg, m.keys.NewTimer):
			return m, func() tea.Msg { return newTimerMsg{} }
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		m.syncKeys()
	}
	return m, nil
}

// syncKeys updates control labels and availability from engine state.
func (m *TimerModel) syncKeys() {
	snap := m.engine.Snapshot()
	label := snap.ToggleLabel()
	m.keys.Toggle.SetEnabled(label != "")
	if label != "" {
		m.keys.Toggle.SetHelp("p", label)
	}
	m.keys.Cancel.SetEnabled(snap.CanCancel())
}

// View implements tea.Model
func (m *TimerModel) View() string {
	snap := m.engine.Snapshot()

	var headline string
	switch {
	case snap.Remaining > 0:
		headline = clockStyle.Inherit(m.colors.style(snap.Band)).Render(snap.Headline())
	case snap.Status == models.TimerStatusCancelled:
		headline = cancelledStyle.Render(snap.Headline())
	default:
		headline = doneStyle.Render(snap.Headline())
	}

	bar := m.bars[snap.Band]
	ring := bar.ViewAs(snap.Progress)
	if snap.Band.Opacity() < 1 {
		ring = lipgloss.NewStyle().Faint(true).Render(ring)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		headline,
		"",
		ring,
		"",
		totalStyle.Render(snap.Duration.String()),
	)

	var b strings.Builder
	b.WriteString(panelStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

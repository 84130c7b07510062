// Package tui provides the interactive terminal UI for blanktimer.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/store"
)

// Options configures the App.
type Options struct {
	Store store.EndTimeStore
	Theme config.ThemeConfig
	// Observers are subscribed to every engine the app creates.
	Observers []func(countdown.Snapshot)
	// Initial skips the picker and starts a timer straight away.
	Initial *models.Duration
	Clock   countdown.Clock
}

// App is the main TUI application model. It switches between the duration
// picker and the running timer.
type App struct {
	opts    Options
	colors  bandColors
	mode    string // "picker", "timer"
	picker  *PickerModel
	timer   *TimerModel
	gen     int
	width   int
	height  int
	program *tea.Program
}

// New creates a new TUI application.
func New(opts Options) *App {
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Clock == nil {
		opts.Clock = countdown.SystemClock
	}
	a := &App{
		opts:   opts,
		colors: newBandColors(opts.Theme),
		mode:   "picker",
		picker: NewPickerModel(),
	}
	a.program = tea.NewProgram(a, tea.WithAltScreen())
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// Foreground notifies the running program that the process has returned to
// the foreground. Safe to call from any goroutine.
func (a *App) Foreground() {
	a.program.Send(ForegroundMsg{At: time.Now()})
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.opts.Initial != nil {
		return a.startTimer(*a.opts.Initial)
	}
	return a.picker.Init()
}

// startTimer builds a fresh engine for d and switches to the timer view.
func (a *App) startTimer(d models.Duration) tea.Cmd {
	engine := countdown.New(a.opts.Store, countdown.WithClock(a.opts.Clock))
	for _, fn := range a.opts.Observers {
		engine.Subscribe(fn)
	}
	engine.Start(d)

	a.gen++
	a.timer = NewTimerModel(engine, a.colors, a.gen)
	a.mode = "timer"
	return a.timer.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case startTimerMsg:
		return a, a.startTimer(msg.duration)

	case newTimerMsg:
		// Leaving the view tears the timer down; its tick chain stops at the
		// next generation check.
		a.timer = nil
		a.picker = NewPickerModel()
		a.mode = "picker"
		return a, nil
	}

	switch a.mode {
	case "timer":
		if a.timer != nil {
			_, cmd := a.timer.Update(msg)
			return a, cmd
		}
	default:
		_, cmd := a.picker.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("⏱  blanktimer") + "\n\n")

	var status string
	switch a.mode {
	case "timer":
		b.WriteString(a.timer.View())
		status = " p:pause/resume | x:cancel | n:new timer | q:quit"
	default:
		b.WriteString(a.picker.View())
		b.WriteString("\n\n" + helpStyle.Render("Pick a duration, then press Enter to start"))
		status = " ↑↓:change | ←→:field | Enter:start | q:quit"
	}
	b.WriteString("\n\n")

	if a.width > 0 {
		b.WriteString(statusBarStyle.Width(a.width).Render(status))
	} else {
		b.WriteString(statusBarStyle.Render(status))
	}
	return b.String()
}

// Mode returns the active screen, "picker" or "timer".
func (a *App) Mode() string {
	return a.mode
}

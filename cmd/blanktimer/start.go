package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/metrics"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/scheduler"
	"github.com/fentz26/blanktimer/internal/tui"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [duration]",
	Short: "Start a countdown",
	Long: `Start a countdown. Without a duration the TUI opens the picker.

Durations are HH:MM:SS, MM:SS, SS or Go duration strings such as 25m or 1h30m.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

var plain bool

func init() {
	startCmd.Flags().BoolVar(&plain, "plain", false, "Run without the TUI, printing one line per tick")
}

func runStart(cmd *cobra.Command, args []string) error {
	var initial *models.Duration
	if len(args) == 1 {
		d, err := models.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		initial = &d
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var (
		recorder  *metrics.Recorder
		observers []func(countdown.Snapshot)
	)
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder.Observe)
		defer func() {
			if err := recorder.WriteFile(cfg.MetricsFile); err != nil {
				log.Printf("Failed to write metrics: %v", err)
			}
		}()
	}

	if plain {
		if initial == nil {
			return fmt.Errorf("--plain needs a duration")
		}
		engine := countdown.New(st)
		engine.Subscribe(printSnapshot(cmd.OutOrStdout()))
		for _, fn := range observers {
			engine.Subscribe(fn)
		}
		return runPlain(engine, *initial)
	}

	return runTUI(cfg, tui.Options{
		Store:     st,
		Theme:     cfg.Theme,
		Observers: observers,
		Initial:   initial,
	})
}

func runTUI(cfg *config.Config, opts tui.Options) error {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogFile, "blanktimer")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	app := tui.New(opts)
	stop := watchForeground(app.Foreground)
	defer stop()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runPlain drives engine on a scheduler.Driver until the countdown ends or
// the process is interrupted, which cancels it.
func runPlain(engine *countdown.Engine, d models.Duration) error {
	engine.Start(d)
	if engine.Status() != models.TimerStatusRunning {
		return nil
	}

	driver := scheduler.New(scheduler.DefaultConfig())
	quitWhenDone := func() {
		if engine.Status() != models.TimerStatusRunning {
			driver.Quit()
		}
	}
	tick := plainTicker(engine)
	driver.OnTick(func(now time.Time) {
		tick(now)
		quitWhenDone()
	})
	driver.OnForeground(func(now time.Time) {
		engine.Resynchronize(now)
		quitWhenDone()
	})
	driver.OnStop(func() {
		if engine.Snapshot().CanCancel() {
			_ = engine.Cancel()
		}
	})

	stop := watchForeground(driver.Foreground)
	defer stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	driver.Start()

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, cancelling timer", sig)
		driver.Stop()
	case <-driver.Done():
	}
	return nil
}

// plainTicker returns the tick handler for plain mode. It remembers the
// previous tick so a sleep shows up as a gap.
func plainTicker(engine *countdown.Engine) func(now time.Time) {
	var lastTick time.Time
	return func(now time.Time) {
		engine.TickAfter(lastTick, now)
		lastTick = now
	}
}

// printSnapshot returns an observer that writes one status line per change.
func printSnapshot(w io.Writer) func(countdown.Snapshot) {
	return func(s countdown.Snapshot) {
		fmt.Fprintf(w, "%-9s %-8s %-9s %3.0f%% %s\n",
			s.Headline(), s.Event, s.Status, s.Progress*100, s.Band)
	}
}

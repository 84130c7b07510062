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

	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/store"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored end time of the running timer",
	RunE:  runStatus,
}

var watchStatus bool

func init() {
	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Keep printing as the stored end time changes")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	if err := printStatus(out, st, time.Now()); err != nil {
		return err
	}
	if !watchStatus {
		return nil
	}
	return watch(cfg, out, st)
}

// printStatus writes one line describing the stored slot as seen at now.
func printStatus(w io.Writer, st store.EndTimeStore, now time.Time) error {
	end, ok, err := st.Get()
	if err != nil {
		return fmt.Errorf("failed to read end time: %w", err)
	}
	if !ok {
		fmt.Fprintln(w, "No timer running")
		return nil
	}

	remaining := end.Sub(now)
	if remaining <= 0 {
		fmt.Fprintf(w, "Ended at %s\n", end.Local().Format("15:04:05"))
		return nil
	}
	fmt.Fprintf(w, "Ends at %s (%s remaining)\n", end.Local().Format("15:04:05"), models.FormatClock(remaining))
	return nil
}

// watch reprints the status every second and whenever the store file
// changes, until interrupted.
func watch(cfg *config.Config, w io.Writer, st store.EndTimeStore) error {
	var events <-chan fsnotify.Event
	if cfg.Store.Backend != store.BackendMemory {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory: the file backend replaces its file by rename.
		if err := watcher.Add(filepath.Dir(cfg.Store.Path)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Store.Path, err)
		}
		events = watcher.Events
		go func() {
			for err := range watcher.Errors {
				log.Printf("Watcher error: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	base := filepath.Base(cfg.Store.Path)
	for {
		select {
		case <-sigCh:
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if err := printStatus(w, st, time.Now()); err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := printStatus(w, st, now); err != nil {
				return err
			}
		}
	}
}

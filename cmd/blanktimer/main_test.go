package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/store"
)

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  backend: sqlite\n  path: /tmp/x.db\n"), 0644); err != nil {
		t.Fatal(err)
	}

	configPath, storeBackend, dbPath = path, "file", filepath.Join(dir, "end.json")
	defer func() { configPath, storeBackend, dbPath = "", "", "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Store.Path != dbPath {
		t.Errorf("path = %q, want %q", cfg.Store.Path, dbPath)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	storeBackend = "redis"
	defer func() { configPath, storeBackend = "", "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestPrintStatus(t *testing.T) {
	now := time.Date(2024, 7, 22, 9, 0, 0, 0, time.Local)
	st := store.NewMemory()

	var buf bytes.Buffer
	if err := printStatus(&buf, st, now); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "No timer running\n" {
		t.Errorf("empty slot: got %q", got)
	}

	buf.Reset()
	if err := st.Set(now.Add(90 * time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := printStatus(&buf, st, now); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Ends at 09:01:30 (00:01:30 remaining)\n" {
		t.Errorf("running: got %q", got)
	}

	buf.Reset()
	if err := printStatus(&buf, st, now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Ended at 09:01:30") {
		t.Errorf("past end: got %q", buf.String())
	}
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	engine := countdown.New(store.NewMemory())
	engine.Subscribe(printSnapshot(&buf))

	engine.Start(models.Duration{Seconds: 2})
	engine.Tick()
	engine.Tick()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "00:00:02") || !strings.Contains(lines[0], "start") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "Done") || !strings.Contains(lines[2], "completed") {
		t.Errorf("last line = %q", lines[2])
	}
}

func TestRunPlainZeroDuration(t *testing.T) {
	engine := countdown.New(store.NewMemory())
	if err := runPlain(engine, models.Duration{}); err != nil {
		t.Fatal(err)
	}
	if engine.Status() != models.TimerStatusCompleted {
		t.Errorf("status = %s, want completed", engine.Status())
	}
}

func TestPlainTickerResynchronizesAfterSleep(t *testing.T) {
	st := store.NewMemory()
	engine := countdown.New(st)
	engine.Start(models.Duration{Seconds: 30})
	tick := plainTicker(engine)

	end, _, _ := st.Get()
	start := end.Add(-30 * time.Second)

	tick(start.Add(time.Second))
	if got := engine.Remaining(); got != 29*time.Second {
		t.Fatalf("remaining = %s, want 29s", got)
	}

	// Twenty seconds pass on the wall clock between two ticks.
	tick(start.Add(21 * time.Second).Round(0))
	if got := engine.Remaining(); got != 9*time.Second {
		t.Errorf("remaining = %s, want 9s", got)
	}
}

func TestPlainTickerGapWithoutStoredEndTime(t *testing.T) {
	st := store.NewMemory()
	engine := countdown.New(st)
	engine.Start(models.Duration{Seconds: 30})
	tick := plainTicker(engine)

	now := time.Now()
	tick(now)
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	tick(now.Add(10 * time.Second))

	if got := engine.Remaining(); got != 28*time.Second {
		t.Errorf("remaining = %s, want 28s", got)
	}
}

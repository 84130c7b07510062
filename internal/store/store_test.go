package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNewUsesWAL(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("Failed to read journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected journal_mode wal, got %q", mode)
	}

	var timeout int
	if err := s.db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("Failed to read busy timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("Expected busy_timeout 5000, got %d", timeout)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := s.Set(time.Unix(1700000000, 0)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	// Reopening must keep the stored value.
	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()

	end, ok, err := s.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected value to survive reopen")
	}
	if !end.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Expected 1700000000, got %v", end.Unix())
	}
}

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) EndTimeStore{
		"sqlite": func(t *testing.T) EndTimeStore {
			s := newTestStore(t)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"file": func(t *testing.T) EndTimeStore {
			return NewFile(filepath.Join(t.TempDir(), "end.json"))
		},
		"memory": func(t *testing.T) EndTimeStore {
			return NewMemory()
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			testSlot(t, open(t))
		})
	}
}

func testSlot(t *testing.T, s EndTimeStore) {
	t.Helper()

	// Empty slot
	_, ok, err := s.Get()
	if err != nil {
		t.Fatalf("Get on empty slot failed: %v", err)
	}
	if ok {
		t.Fatal("Expected empty slot")
	}

	// Set
	first := time.Date(2024, 7, 22, 10, 0, 0, 250_000_000, time.UTC)
	if err := s.Set(first); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, err := s.Get()
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if diff := got.Sub(first); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("Expected %v, got %v", first, got)
	}

	// Overwrite: a second timer replaces the first.
	second := first.Add(90 * time.Second)
	if err := s.Set(second); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	got, _, _ = s.Get()
	if diff := got.Sub(second); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("Expected overwrite to %v, got %v", second, got)
	}

	// Clear
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := s.Get(); ok {
		t.Error("Expected empty slot after Clear")
	}

	// Clear is idempotent
	if err := s.Clear(); err != nil {
		t.Errorf("Second Clear failed: %v", err)
	}
}

func TestFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "end.json")
	f := NewFile(path)

	if err := f.Set(time.Unix(1721640000, 500_000_000)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "{\n  \"timerEndTime\": 1721640000.5\n}\n"
	if string(data) != want {
		t.Errorf("Unexpected file contents:\n%s", data)
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "end.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewFile(path).Get(); err == nil {
		t.Error("Expected decode error for corrupt file")
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		s, closeFn, err := Open(backend, filepath.Join(tmpDir, backend))
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", backend, err)
		}
		if s == nil {
			t.Fatalf("Open(%q) returned nil store", backend)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close %q failed: %v", backend, err)
		}
	}

	if _, _, err := Open("redis", ""); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func newTestStore(t *testing.T) *Store {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File implements EndTimeStore using a small JSON document on disk.
// A missing file is an empty slot.
type File struct {
	Path string
}

// NewFile creates a JSON file backed store.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Set writes {"timerEndTime": <unix seconds>} to the file.
func (f *File) Set(end time.Time) error {
	doc := map[string]float64{EndTimeKey: toUnixSeconds(end)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	// Write then rename so a reader never sees a half-written document.
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write end time: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("write end time: %w", err)
	}
	return nil
}

// Get reads the end time from the file.
func (f *File) Get() (time.Time, bool, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read end time: %w", err)
	}

	var doc map[string]float64
	if err := json.Unmarshal(data, &doc); err != nil {
		return time.Time{}, false, fmt.Errorf("decode end time: %w", err)
	}
	v, ok := doc[EndTimeKey]
	if !ok {
		return time.Time{}, false, nil
	}
	return fromUnixSeconds(v), true, nil
}

// Clear removes the file.
func (f *File) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear end time: %w", err)
	}
	return nil
}

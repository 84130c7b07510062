package store

import (
	"sync"
	"time"
)

// Memory is an in-process EndTimeStore. It does not survive a restart.
type Memory struct {
	mu  sync.Mutex
	end *time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Set overwrites the slot.
func (m *Memory) Set(end time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.end = &end
	return nil
}

// Get returns the slot value.
func (m *Memory) Get() (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.end == nil {
		return time.Time{}, false, nil
	}
	return *m.end, true, nil
}

// Clear empties the slot.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.end = nil
	return nil
}

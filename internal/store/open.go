package store

import "fmt"

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the EndTimeStore for backend together with a function that
// releases it. path is ignored for the memory backend.
func Open(backend, path string) (EndTimeStore, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendSQLite, "":
		s, err := New(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendFile:
		return NewFile(path), noop, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

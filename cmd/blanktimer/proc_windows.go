//go:build windows

package main

// watchForeground is a no-op on Windows, which has no SIGCONT. Tick-gap
// detection in the TUI still catches sleeps.
func watchForeground(fn func()) func() {
	return func() {}
}

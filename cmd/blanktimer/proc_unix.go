//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// watchForeground calls fn every time the process is continued after being
// stopped. The returned function stops watching.
func watchForeground(fn func()) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCONT)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

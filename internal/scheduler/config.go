// Package scheduler drives periodic ticks and foreground notifications on a
// single goroutine.
package scheduler

import "time"

// Config defines the driver configuration.
type Config struct {
	// Interval between ticks.
	Interval time.Duration `yaml:"interval"`
}

// DefaultConfig returns the default driver configuration: one tick per second.
func DefaultConfig() *Config {
	return &Config{
		Interval: time.Second,
	}
}

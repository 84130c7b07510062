// Package models defines the core domain types for blanktimer.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Selector bounds for a countdown duration.
const (
	MaxHours   = 9
	MaxMinutes = 59
	MaxSeconds = 59
)

// ErrOutOfRange is returned when a parsed field exceeds its selector bounds.
var ErrOutOfRange = errors.New("duration field out of range")

// TimerStatus represents the current state of a countdown.
type TimerStatus string

const (
	TimerStatusRunning   TimerStatus = "running"
	TimerStatusPaused    TimerStatus = "paused"
	TimerStatusCompleted TimerStatus = "completed"
	TimerStatusCancelled TimerStatus = "cancelled"
)

// Duration is the hours/minutes/seconds triple chosen before a timer starts.
// Fields are clamped to their selector bounds by NewDuration.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// NewDuration builds a Duration, clamping each field into its selector range.
func NewDuration(hours, minutes, seconds int) Duration {
	return Duration{
		Hours:   clamp(hours, 0, MaxHours),
		Minutes: clamp(minutes, 0, MaxMinutes),
		Seconds: clamp(seconds, 0, MaxSeconds),
	}
}

// TotalSeconds returns hours*3600 + minutes*60 + seconds.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Total returns the duration as a time.Duration.
func (d Duration) Total() time.Duration {
	return time.Duration(d.TotalSeconds()) * time.Second
}

// IsZero reports whether the duration is 00:00:00.
func (d Duration) IsZero() bool {
	return d.TotalSeconds() == 0
}

// String renders the duration as zero-padded HH:MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// FormatClock renders d as zero-padded HH:MM:SS, truncating fractional seconds.
// Negative values render as 00:00:00.
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseDuration accepts "HH:MM:SS", "MM:SS", "SS" or a Go duration string
// such as "1m30s". Fields outside the selector bounds yield ErrOutOfRange.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Duration{}, fmt.Errorf("empty duration")
	}

	if strings.ContainsAny(s, "hms") {
		td, err := time.ParseDuration(s)
		if err != nil {
			return Duration{}, fmt.Errorf("parse duration %q: %w", s, err)
		}
		return FromTimeDuration(td)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Duration{}, fmt.Errorf("parse duration %q: too many fields", s)
	}
	fields := make([]int, 3)
	offset := 3 - len(parts)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Duration{}, fmt.Errorf("parse duration %q: invalid field %q", s, p)
		}
		fields[offset+i] = n
	}

	d := Duration{Hours: fields[0], Minutes: fields[1], Seconds: fields[2]}
	if err := d.Validate(); err != nil {
		return Duration{}, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}

// FromTimeDuration splits a whole-second time.Duration into a Duration.
func FromTimeDuration(td time.Duration) (Duration, error) {
	if td < 0 {
		return Duration{}, fmt.Errorf("negative duration %s", td)
	}
	total := int(td / time.Second)
	d := Duration{Hours: total / 3600, Minutes: (total % 3600) / 60, Seconds: total % 60}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// Validate checks each field against its selector bounds.
func (d Duration) Validate() error {
	if d.Hours < 0 || d.Hours > MaxHours {
		return fmt.Errorf("hours %d: %w", d.Hours, ErrOutOfRange)
	}
	if d.Minutes < 0 || d.Minutes > MaxMinutes {
		return fmt.Errorf("minutes %d: %w", d.Minutes, ErrOutOfRange)
	}
	if d.Seconds < 0 || d.Seconds > MaxSeconds {
		return fmt.Errorf("seconds %d: %w", d.Seconds, ErrOutOfRange)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

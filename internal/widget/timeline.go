// Package widget precomputes display states for the passive timer widget.
//
// The widget does not read the live countdown. Every timeline describes a
// fresh 60 second reference countdown starting at the request time.
package widget

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultWindow is the length of the reference countdown.
const DefaultWindow = 60 * time.Second

// Entry is one precomputed widget state.
type Entry struct {
	Date      time.Time
	Remaining time.Duration
	IsPaused  bool
}

// MarshalJSON encodes the remaining time in seconds, the unit the stored end
// time uses.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date             time.Time `json:"date"`
		RemainingSeconds float64   `json:"remaining_seconds"`
		IsPaused         bool      `json:"is_paused"`
	}{
		Date:             e.Date,
		RemainingSeconds: e.Remaining.Seconds(),
		IsPaused:         e.IsPaused,
	})
}

// RefreshPolicy tells the host when to request the next timeline.
type RefreshPolicy string

// RefreshAtEnd asks for a new timeline once the last entry's date has passed.
const RefreshAtEnd RefreshPolicy = "at_end"

// Timeline is an ordered sequence of entries plus its refresh policy.
type Timeline struct {
	Entries []Entry       `json:"entries"`
	Policy  RefreshPolicy `json:"policy"`
}

// Provider generates widget timelines.
type Provider struct {
	// Window is the reference countdown length. Zero means DefaultWindow.
	Window time.Duration
}

// NewProvider returns a Provider with the default 60 second window.
func NewProvider() *Provider {
	return &Provider{Window: DefaultWindow}
}

func (p *Provider) window() time.Duration {
	if p == nil || p.Window <= 0 {
		return DefaultWindow
	}
	return p.Window
}

// Placeholder is shown while the host has no timeline yet.
func (p *Provider) Placeholder(now time.Time) Entry {
	return Entry{Date: now, Remaining: p.window()}
}

// Snapshot is a single entry for previews.
func (p *Provider) Snapshot(now time.Time) Entry {
	return Entry{Date: now, Remaining: p.window()}
}

// Timeline returns one entry per second for the whole window, starting at now.
func (p *Provider) Timeline(now time.Time) Timeline {
	window := p.window()
	n := int(window / time.Second)
	entries := make([]Entry, 0, n)
	for offset := 0; offset < n; offset++ {
		remaining := window - time.Duration(offset)*time.Second
		if remaining < 0 {
			remaining = 0
		}
		entries = append(entries, Entry{
			Date:      now.Add(time.Duration(offset) * time.Second),
			Remaining: remaining,
			IsPaused:  false,
		})
	}
	return Timeline{Entries: entries, Policy: RefreshAtEnd}
}

// EntryAt returns the most recent entry whose date is not after t. ok is
// false when t is before the first entry.
func (tl Timeline) EntryAt(t time.Time) (Entry, bool) {
	var (
		found Entry
		ok    bool
	)
	for _, e := range tl.Entries {
		if e.Date.After(t) {
			break
		}
		found, ok = e, true
	}
	return found, ok
}

// Expired reports whether the host should request a new timeline.
func (tl Timeline) Expired(t time.Time) bool {
	if len(tl.Entries) == 0 {
		return true
	}
	return t.After(tl.Entries[len(tl.Entries)-1].Date)
}

// Label renders the entry's remaining time as MM:SS.
func (e Entry) Label() string {
	total := int(e.Remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Fraction is the ring fill for the entry against window.
func (e Entry) Fraction(window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	f := float64(e.Remaining) / float64(window)
	if f > 1 {
		return 1
	}
	return f
}

// Icon is the control glyph: pause while running, play while paused.
func (e Entry) Icon() string {
	if e.IsPaused {
		return "▶"
	}
	return "⏸"
}

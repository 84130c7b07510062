package widget

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, 7, 22, 12, 0, 0, 0, time.UTC)

func TestTimeline(t *testing.T) {
	tl := NewProvider().Timeline(refNow)

	require.Len(t, tl.Entries, 60)
	require.Equal(t, RefreshAtEnd, tl.Policy)

	for i, e := range tl.Entries {
		require.True(t, e.Date.Equal(refNow.Add(time.Duration(i)*time.Second)), "entry %d date", i)
		require.Equal(t, time.Duration(60-i)*time.Second, e.Remaining, "entry %d remaining", i)
		require.False(t, e.IsPaused)
	}
	require.Equal(t, 60*time.Second, tl.Entries[0].Remaining)
	require.Equal(t, time.Second, tl.Entries[59].Remaining)
}

func TestZeroProviderUsesDefaultWindow(t *testing.T) {
	var p Provider
	require.Len(t, p.Timeline(refNow).Entries, 60)
	require.Equal(t, DefaultWindow, p.Placeholder(refNow).Remaining)
}

func TestPlaceholderAndSnapshot(t *testing.T) {
	p := NewProvider()
	for _, e := range []Entry{p.Placeholder(refNow), p.Snapshot(refNow)} {
		require.Equal(t, refNow, e.Date)
		require.Equal(t, 60*time.Second, e.Remaining)
		require.False(t, e.IsPaused)
	}
}

func TestEntryAt(t *testing.T) {
	tl := NewProvider().Timeline(refNow)

	_, ok := tl.EntryAt(refNow.Add(-time.Millisecond))
	require.False(t, ok)

	e, ok := tl.EntryAt(refNow)
	require.True(t, ok)
	require.Equal(t, 60*time.Second, e.Remaining)

	e, ok = tl.EntryAt(refNow.Add(12*time.Second + 400*time.Millisecond))
	require.True(t, ok)
	require.Equal(t, 48*time.Second, e.Remaining)

	e, ok = tl.EntryAt(refNow.Add(10 * time.Minute))
	require.True(t, ok)
	require.Equal(t, time.Second, e.Remaining)
}

func TestExpired(t *testing.T) {
	tl := NewProvider().Timeline(refNow)
	require.False(t, tl.Expired(refNow))
	require.False(t, tl.Expired(refNow.Add(59*time.Second)))
	require.True(t, tl.Expired(refNow.Add(59*time.Second+time.Millisecond)))
	require.True(t, Timeline{}.Expired(refNow))
}

func TestEntryDisplay(t *testing.T) {
	e := Entry{Remaining: 60 * time.Second}
	require.Equal(t, "01:00", e.Label())
	require.Equal(t, 1.0, e.Fraction(DefaultWindow))
	require.Equal(t, "⏸", e.Icon())

	e = Entry{Remaining: 9 * time.Second, IsPaused: true}
	require.Equal(t, "00:09", e.Label())
	require.InDelta(t, 0.15, e.Fraction(DefaultWindow), 1e-9)
	require.Equal(t, "▶", e.Icon())
	require.Zero(t, e.Fraction(0))
}

func TestEntryJSONUsesSeconds(t *testing.T) {
	tl := NewProvider().Timeline(refNow)

	data, err := json.Marshal(tl.Entries[0])
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"2024-07-22T12:00:00Z","remaining_seconds":60,"is_paused":false}`, string(data))

	data, err = json.Marshal(tl)
	require.NoError(t, err)
	require.Contains(t, string(data), `"remaining_seconds":1,`)
	require.Contains(t, string(data), `"policy":"at_end"`)
	require.NotContains(t, string(data), "60000000000")
}

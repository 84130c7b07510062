// Package countdown implements the countdown timer state machine.
//
// An Engine is not safe for concurrent use. Every call is expected to come
// from the single event loop that also delivers ticks and foreground
// notifications.
package countdown

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fentz26/blanktimer/internal/models"
	"github.com/fentz26/blanktimer/internal/store"
	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when an operation is not valid from the
// current status. State is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Event names the transition that produced a Snapshot.
type Event string

const (
	EventStart   Event = "start"
	EventTick    Event = "tick"
	EventPause   Event = "pause"
	EventResume  Event = "resume"
	EventCancel  Event = "cancel"
	EventRestart Event = "restart"
	EventResync  Event = "resync"
)

// SleepThreshold is the gap between two ticks after which the process is
// assumed to have been suspended.
const SleepThreshold = 3 * time.Second

// Snapshot is a copy of the engine state after a change.
type Snapshot struct {
	ID        string
	Event     Event
	Duration  models.Duration
	Total     time.Duration
	Remaining time.Duration
	Status    models.TimerStatus
	Progress  float64
	Band      Band
}

// Engine owns the state of one countdown.
type Engine struct {
	store store.EndTimeStore
	clock Clock

	id        string
	duration  models.Duration
	remaining time.Duration
	status    models.TimerStatus
	progress  float64
	band      Band

	observers []func(Snapshot)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for end-time persistence.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an Engine persisting its end time to s.
func New(s store.EndTimeStore, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		clock:    SystemClock,
		progress: 1,
		band:     BandGreen,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers fn to be called after every state change.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.observers = append(e.observers, fn)
}

// Start begins counting down d. A zero duration completes immediately.
func (e *Engine) Start(d models.Duration) {
	e.id = uuid.New().String()
	e.duration = d
	e.remaining = d.Total()
	e.status = models.TimerStatusRunning
	e.recompute()
	log.Printf("timer %s: started %s", e.shortID(), d)

	if e.remaining <= 0 {
		e.complete()
	} else {
		e.persist()
	}
	e.notify(EventStart)
}

// Tick advances a running timer by one second. It does nothing otherwise.
func (e *Engine) Tick() {
	if e.status != models.TimerStatusRunning {
		return
	}

	e.remaining -= time.Second
	if e.remaining < 0 {
		e.remaining = 0
	}
	e.recompute()
	if e.remaining == 0 {
		e.complete()
	}
	e.notify(EventTick)
}

// Pause stops a running timer and forgets its end time, so a suspended
// process does not keep counting.
func (e *Engine) Pause() error {
	if e.status != models.TimerStatusRunning {
		return e.invalid("pause")
	}
	e.status = models.TimerStatusPaused
	e.clearStored()
	log.Printf("timer %s: paused at %s", e.shortID(), models.FormatClock(e.remaining))
	e.notify(EventPause)
	return nil
}

// Resume continues a paused timer and stores a fresh end time.
func (e *Engine) Resume() error {
	if e.status != models.TimerStatusPaused {
		return e.invalid("resume")
	}
	e.status = models.TimerStatusRunning
	e.persist()
	log.Printf("timer %s: resumed at %s", e.shortID(), models.FormatClock(e.remaining))
	e.notify(EventResume)
	return nil
}

// Toggle is the single pause/resume control. On a completed timer it
// restarts. A cancelled timer cannot be toggled.
func (e *Engine) Toggle() error {
	switch e.status {
	case models.TimerStatusRunning:
		return e.Pause()
	case models.TimerStatusPaused:
		return e.Resume()
	case models.TimerStatusCompleted:
		return e.Restart()
	default:
		return e.invalid("toggle")
	}
}

// Cancel ends a running or paused timer for good. Progress is forced to 1 so
// the ring draws full and red.
func (e *Engine) Cancel() error {
	if e.status != models.TimerStatusRunning && e.status != models.TimerStatusPaused {
		return e.invalid("cancel")
	}
	e.remaining = 0
	e.progress = 1
	e.band = BandRed
	e.status = models.TimerStatusCancelled
	e.clearStored()
	log.Printf("timer %s: cancelled", e.shortID())
	e.notify(EventCancel)
	return nil
}

// Restart runs a completed timer again from its full duration.
func (e *Engine) Restart() error {
	if e.status != models.TimerStatusCompleted {
		return e.invalid("restart")
	}
	e.remaining = e.duration.Total()
	e.status = models.TimerStatusRunning
	e.recompute()
	log.Printf("timer %s: restarted %s", e.shortID(), e.duration)
	if e.remaining <= 0 {
		e.complete()
	} else {
		e.persist()
	}
	e.notify(EventRestart)
	return nil
}

// Resynchronize recomputes the remaining time from the stored end time after
// the process regains the foreground. Without a stored end time, or when the
// timer is not running, state is left unchanged and false is returned.
func (e *Engine) Resynchronize(now time.Time) bool {
	if e.status != models.TimerStatusRunning {
		return false
	}

	end, ok, err := e.store.Get()
	if err != nil {
		log.Printf("timer %s: read end time: %v", e.shortID(), err)
		return false
	}
	if !ok {
		return false
	}

	remaining := end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	if total := e.duration.Total(); remaining > total {
		remaining = total
	}
	e.remaining = remaining
	e.recompute()
	if e.remaining <= 0 {
		e.complete()
	}
	log.Printf("timer %s: resynchronized to %s", e.shortID(), models.FormatClock(e.remaining))
	e.notify(EventResync)
	return true
}

// TickAfter handles a tick delivered at now when the previous one arrived at
// prev (zero for the first tick). A gap longer than SleepThreshold means the
// process or the machine was asleep, so the timer resynchronizes from the
// stored end time. With nothing to resynchronize against it ticks as usual.
func (e *Engine) TickAfter(prev, now time.Time) {
	if !prev.IsZero() && WallElapsed(prev, now) > SleepThreshold && e.Resynchronize(now) {
		return
	}
	e.Tick()
}

// WallElapsed is now - prev on the wall clock. Monotonic readings are
// stripped first: the monotonic clock stops while the machine sleeps.
func WallElapsed(prev, now time.Time) time.Duration {
	return now.Round(0).Sub(prev.Round(0))
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		ID:        e.id,
		Duration:  e.duration,
		Total:     e.duration.Total(),
		Remaining: e.remaining,
		Status:    e.status,
		Progress:  e.progress,
		Band:      e.band,
	}
}

// Status returns the current status. It is empty before Start.
func (e *Engine) Status() models.TimerStatus { return e.status }

// Remaining returns the remaining time.
func (e *Engine) Remaining() time.Duration { return e.remaining }

// Progress returns remaining/total, or 1 for a cancelled timer.
func (e *Engine) Progress() float64 { return e.progress }

// Band returns the indicator color.
func (e *Engine) Band() Band { return e.band }

// Duration returns the duration the timer was started with.
func (e *Engine) Duration() models.Duration { return e.duration }

func (e *Engine) complete() {
	e.remaining = 0
	e.status = models.TimerStatusCompleted
	e.recompute()
	e.clearStored()
	log.Printf("timer %s: completed", e.shortID())
}

func (e *Engine) recompute() {
	total := e.duration.Total()
	if total <= 0 {
		e.progress = 0
	} else {
		e.progress = float64(e.remaining) / float64(total)
	}
	e.band = BandFor(e.progress)
}

func (e *Engine) persist() {
	end := e.clock.Now().Add(e.remaining)
	if err := e.store.Set(end); err != nil {
		log.Printf("timer %s: store end time: %v", e.shortID(), err)
	}
}

func (e *Engine) clearStored() {
	if err := e.store.Clear(); err != nil {
		log.Printf("timer %s: clear end time: %v", e.shortID(), err)
	}
}

func (e *Engine) notify(ev Event) {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	snap.Event = ev
	for _, fn := range e.observers {
		fn(snap)
	}
}

func (e *Engine) invalid(op string) error {
	status := e.status
	if status == "" {
		status = "idle"
	}
	return fmt.Errorf("%s from %s: %w", op, status, ErrInvalidTransition)
}

func (e *Engine) shortID() string {
	if len(e.id) > 8 {
		return e.id[:8]
	}
	return e.id
}

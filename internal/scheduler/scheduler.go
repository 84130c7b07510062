package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Driver is the event loop for headless timers. Tick and foreground callbacks
// all run on the driver goroutine, one at a time, so the state they touch
// needs no locking.
type Driver struct {
	config *Config

	onTick       []func(time.Time)
	onForeground []func(time.Time)
	onStop       []func()

	foreground chan time.Time
	done       chan struct{}

	// Control
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Test configuration
	newTicker func(d time.Duration) (<-chan time.Time, func())
}

// New creates a new driver.
func New(cfg *Config) *Driver {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Driver{
		config:     cfg,
		foreground: make(chan time.Time, 1),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// OnTick registers fn to run on every tick. Register before Start.
func (d *Driver) OnTick(fn func(now time.Time)) {
	d.onTick = append(d.onTick, fn)
}

// OnForeground registers fn to run when the process returns to the
// foreground. Register before Start.
func (d *Driver) OnForeground(fn func(now time.Time)) {
	d.onForeground = append(d.onForeground, fn)
}

// OnStop registers fn to run on the driver goroutine as the loop exits.
func (d *Driver) OnStop(fn func()) {
	d.onStop = append(d.onStop, fn)
}

// Foreground queues a foreground notification. It never blocks; repeated
// notifications before the loop handles one collapse into one.
func (d *Driver) Foreground() {
	select {
	case d.foreground <- time.Now():
	default:
	}
}

// Start begins the driver loop.
func (d *Driver) Start() {
	d.wg.Add(1)
	go d.loop()
	log.Printf("Driver started (interval %s)", d.config.Interval)
}

// Stop gracefully stops the driver and waits for the loop to exit.
func (d *Driver) Stop() {
	d.cancel()
	d.wg.Wait()
}

// Quit asks the loop to exit without waiting for it. Callbacks use Quit;
// calling Stop from a callback would deadlock.
func (d *Driver) Quit() {
	d.cancel()
}

// Done is closed once the loop has exited.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// loop multiplexes ticks, foreground notifications and stop.
func (d *Driver) loop() {
	defer d.wg.Done()
	defer close(d.done)

	ticks, stopTicker := d.newTicker(d.config.Interval)
	defer stopTicker()

	defer func() {
		for _, fn := range d.onStop {
			fn()
		}
		log.Println("Driver stopped")
	}()

	for {
		select {
		case <-d.ctx.Done():
			return
		case now := <-d.foreground:
			for _, fn := range d.onForeground {
				fn(now)
			}
		case now := <-ticks:
			for _, fn := range d.onTick {
				fn(now)
			}
		}
	}
}

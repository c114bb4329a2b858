package checkout

import (
	"sync"
	"time"

	"github.com/go-drift/checkout/pkg/platform"
)

// DefaultDebounceDelay is how long navigation must be quiet before the last
// URL is classified.
const DefaultDebounceDelay = 300 * time.Millisecond

// Timer is a single-shot timer handle. *time.Timer satisfies it.
type Timer = interface{ Stop() bool }

// Clock schedules single-shot callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer collapses bursts of calls into one trailing call. Each Call
// restarts the delay and replaces the pending argument; once the delay
// passes without another Call, fn runs once with the latest argument.
//
// fn runs through [platform.RunOnUI]: on the UI thread when the host has
// registered a dispatcher, on the timer goroutine otherwise.
//
// All methods are safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	clock Clock
	fn    func(string)

	mu      sync.Mutex
	timer   Timer
	pending string
	gen     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer that calls fn. A nil clock uses the
// system clock.
func NewDebouncer(delay time.Duration, clock Clock, fn func(string)) *Debouncer {
	if clock == nil {
		clock = systemClock{}
	}
	return &Debouncer{delay: delay, clock: clock, fn: fn}
}

// Call schedules fn(arg), replacing any call still waiting.
func (d *Debouncer) Call(arg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = arg
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any waiting call. Later calls to Call are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	run := func() {
		d.mu.Lock()
		// A Call or Stop after the timer elapsed supersedes this fire.
		if d.stopped || gen != d.gen || d.timer == nil {
			d.mu.Unlock()
			return
		}
		arg := d.pending
		d.timer = nil
		d.pending = ""
		d.mu.Unlock()
		d.fn(arg)
	}
	platform.RunOnUI(run)
}

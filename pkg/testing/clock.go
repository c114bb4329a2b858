package testing

import (
	"sort"
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic timer tests.
// Timers created with AfterFunc fire synchronously inside Advance or Set,
// in deadline order, on the calling goroutine.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*FakeTimer
	seq    int
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Timer is the handle returned by AfterFunc. It is an alias so that
// FakeClock satisfies clock interfaces declared in other packages.
type Timer = interface{ Stop() bool }

// AfterFunc schedules f to run once the clock has advanced by d.
// The returned handle is a *FakeTimer.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &FakeTimer{clock: c, when: c.now.Add(d), fn: f, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	c.Set(target)
}

// Set moves the clock to t, firing every timer due at or before t.
// Timers scheduled by fired callbacks also fire if they come due by t.
func (c *FakeClock) Set(t time.Time) {
	for {
		c.mu.Lock()
		next := c.nextDue(t)
		if next == nil {
			c.now = t
			c.mu.Unlock()
			return
		}
		c.remove(next)
		if next.when.After(c.now) {
			c.now = next.when
		}
		c.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// nextDue returns the earliest timer due at or before t. Callers hold mu.
func (c *FakeClock) nextDue(t time.Time) *FakeTimer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].when.Equal(c.timers[j].when) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].when.Before(c.timers[j].when)
	})
	if len(c.timers) == 0 || c.timers[0].when.After(t) {
		return nil
	}
	return c.timers[0]
}

// remove drops t from the pending set, reporting whether it was pending.
// Callers hold mu.
func (c *FakeClock) remove(t *FakeTimer) bool {
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// FakeTimer is a single-shot timer driven by a FakeClock.
type FakeTimer struct {
	clock *FakeClock
	when  time.Time
	fn    func()
	seq   int
}

// Stop prevents the timer from firing. It returns false if the timer has
// already fired or been stopped.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.remove(t)
}

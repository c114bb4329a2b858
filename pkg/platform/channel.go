package platform

import (
	"sync"
	"sync/atomic"
)

// MethodHandler answers a method call sent by native code.
type MethodHandler func(method string, args any) (any, error)

// MethodChannel carries method calls in both directions under one name.
type MethodChannel struct {
	name string

	mu      sync.RWMutex
	handler MethodHandler
}

// NewMethodChannel registers a method channel under name.
func NewMethodChannel(name string) *MethodChannel {
	ch := &MethodChannel{name: name}
	registry.registerMethod(name, ch)
	return ch
}

func (c *MethodChannel) Name() string { return c.name }

// SetHandler sets the handler for calls from native. Calls arriving with
// no handler fail with [ErrMethodNotFound].
func (c *MethodChannel) SetHandler(h MethodHandler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// Invoke calls method on the native side and blocks for its result.
func (c *MethodChannel) Invoke(method string, args any) (any, error) {
	return invokeNative(c.name, method, args)
}

func (c *MethodChannel) handleCall(method string, args any) (any, error) {
	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()
	if h == nil {
		return nil, ErrMethodNotFound
	}
	return h(method, args)
}

// EventHandler holds the callbacks of one event subscription. Any of them
// may be nil.
type EventHandler struct {
	OnEvent func(data any)
	OnError func(err error)
	OnDone  func()
}

// Subscription is returned by [EventChannel.Listen].
type Subscription struct {
	channel  *EventChannel
	handler  EventHandler
	canceled atomic.Bool
}

// Cancel detaches the subscription. The native stream stops when the last
// subscription of a channel is canceled.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.channel.remove(s)
	}
}

func (s *Subscription) IsCanceled() bool { return s.canceled.Load() }

// EventChannel receives a stream of events from native code. The native
// stream runs while the channel has at least one subscription and a
// bridge is installed.
type EventChannel struct {
	name string

	mu      sync.Mutex
	subs    []*Subscription
	started bool
}

// NewEventChannel registers an event channel under name.
func NewEventChannel(name string) *EventChannel {
	ch := &EventChannel{name: name}
	registry.registerEvent(name, ch)
	return ch
}

func (c *EventChannel) Name() string { return c.name }

// Listen adds a subscription. Without a bridge the native stream is started
// later by [SetNativeBridge]. If starting it fails, handler.OnError is told
// and the subscription stays in place.
func (c *EventChannel) Listen(handler EventHandler) *Subscription {
	sub := &Subscription{channel: c, handler: handler}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	if err := c.ensureStarted(); err != nil && handler.OnError != nil {
		handler.OnError(err)
	}
	return sub
}

// ensureStarted starts the native stream when the channel has subscribers,
// a bridge is installed and the stream is not running yet.
func (c *EventChannel) ensureStarted() error {
	c.mu.Lock()
	start := !c.started && len(c.subs) > 0 && currentBridge() != nil
	c.started = c.started || start
	c.mu.Unlock()

	if !start {
		return nil
	}
	if err := startEventStream(c.name); err != nil {
		c.mu.Lock()
		c.started = false
		c.mu.Unlock()
		return err
	}
	return nil
}

// reset drops every subscription without telling native.
func (c *EventChannel) reset() {
	c.mu.Lock()
	c.subs = nil
	c.started = false
	c.mu.Unlock()
}

func (c *EventChannel) remove(sub *Subscription) {
	c.mu.Lock()
	kept := c.subs[:0]
	for _, s := range c.subs {
		if s != sub {
			kept = append(kept, s)
		}
	}
	c.subs = kept
	stop := c.started && len(c.subs) == 0
	if stop {
		c.started = false
	}
	c.mu.Unlock()

	if stop {
		// stopEventStream reports its own failures.
		_ = stopEventStream(c.name)
	}
}

// each calls fn for every live subscription, outside the lock.
func (c *EventChannel) each(fn func(h *EventHandler)) {
	c.mu.Lock()
	subs := append([]*Subscription(nil), c.subs...)
	c.mu.Unlock()
	for _, s := range subs {
		if !s.IsCanceled() {
			fn(&s.handler)
		}
	}
}

func (c *EventChannel) dispatchEvent(data any) {
	c.each(func(h *EventHandler) {
		if h.OnEvent != nil {
			h.OnEvent(data)
		}
	})
}

func (c *EventChannel) dispatchError(err error) {
	c.each(func(h *EventHandler) {
		if h.OnError != nil {
			h.OnError(err)
		}
	})
}

// dispatchDone ends the stream: every subscription is canceled and told.
func (c *EventChannel) dispatchDone() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.started = false
	c.mu.Unlock()

	for _, s := range subs {
		s.canceled.Store(true)
		if s.handler.OnDone != nil {
			s.handler.OnDone()
		}
	}
}

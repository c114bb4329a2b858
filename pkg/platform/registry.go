package platform

import (
	"fmt"
	"sync"

	"github.com/go-drift/checkout/pkg/errors"
)

// NativeBridge is implemented by the host's native layer.
type NativeBridge interface {
	// InvokeMethod delivers a method call to native and returns its
	// encoded result.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)

	StartEventStream(channel string) error
	StopEventStream(channel string) error
}

// channelRegistry maps channel names to channels.
type channelRegistry struct {
	mu     sync.RWMutex
	method map[string]*MethodChannel
	event  map[string]*EventChannel
}

var registry = &channelRegistry{
	method: make(map[string]*MethodChannel),
	event:  make(map[string]*EventChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.method[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) registerEvent(name string, ch *EventChannel) {
	r.mu.Lock()
	r.event[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) methodChannel(name string) *MethodChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.method[name]
}

func (r *channelRegistry) eventChannel(name string) *EventChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.event[name]
}

func (r *channelRegistry) eventChannels() []*EventChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*EventChannel, 0, len(r.event))
	for _, ch := range r.event {
		out = append(out, ch)
	}
	return out
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

// builtinInits are the package's own listeners, replayed by ResetForTest.
var builtinInits []func()

func registerBuiltinInit(fn func()) {
	builtinInits = append(builtinInits, fn)
	fn()
}

// SetNativeBridge installs the native bridge and starts the event streams
// of channels that were subscribed to before it existed, such as the
// platform view channel subscribed during init. A stream that fails to
// start is reported to its subscribers.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()

	if bridge == nil {
		return
	}
	for _, ch := range registry.eventChannels() {
		if err := ch.ensureStarted(); err != nil {
			ch.dispatchError(err)
		}
	}
}

func invokeNative(channel, method string, args any) (any, error) {
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}
	payload, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}
	result, err := bridge.InvokeMethod(channel, method, payload)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Decode(result)
}

func startEventStream(channel string) error {
	return streamCall("platform.startEventStream", channel, NativeBridge.StartEventStream)
}

func stopEventStream(channel string) error {
	return streamCall("platform.stopEventStream", channel, NativeBridge.StopEventStream)
}

// streamCall runs a stream control call and reports any failure.
func streamCall(op, channel string, call func(NativeBridge, string) error) error {
	err := ErrPlatformUnavailable
	if bridge := currentBridge(); bridge != nil {
		err = call(bridge, channel)
	}
	if err != nil {
		errors.Report(&errors.CheckoutError{Op: op, Kind: errors.KindPlatform, Channel: channel, Err: err})
	}
	return err
}

// HandleMethodCall is called by the bridge when native invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := registry.methodChannel(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(result)
}

// eventTarget finds the event channel for an incoming native event.
// Events for unknown channels are reported as well as returned.
func eventTarget(op, channel string) (*EventChannel, error) {
	if ch := registry.eventChannel(channel); ch != nil {
		return ch, nil
	}
	err := fmt.Errorf("%w: %s", ErrChannelNotFound, channel)
	errors.Report(&errors.CheckoutError{Op: op, Kind: errors.KindPlatform, Channel: channel, Err: err})
	return nil, err
}

// HandleEvent is called by the bridge for each event native sends. A
// payload that does not decode is passed to subscribers as an error.
func HandleEvent(channel string, eventData []byte) error {
	ch, err := eventTarget("platform.HandleEvent", channel)
	if err != nil {
		return err
	}
	data, err := DefaultCodec.Decode(eventData)
	if err != nil {
		ch.dispatchError(err)
		return err
	}
	ch.dispatchEvent(data)
	return nil
}

// HandleEventError is called by the bridge when a native stream fails.
func HandleEventError(channel, code, message string) error {
	ch, err := eventTarget("platform.HandleEventError", channel)
	if err != nil {
		return err
	}
	ch.dispatchError(NewChannelError(code, message))
	return nil
}

// HandleEventDone is called by the bridge when a native stream ends.
func HandleEventDone(channel string) error {
	ch, err := eventTarget("platform.HandleEventDone", channel)
	if err != nil {
		return err
	}
	ch.dispatchDone()
	return nil
}

// ResetForTest returns the package to its state after init: no bridge, no
// dispatcher, no views, and only the built-in subscriptions. Tests only.
func ResetForTest() {
	bridgeMu.Lock()
	nativeBridge = nil
	bridgeMu.Unlock()

	RegisterDispatch(nil)

	for _, ch := range registry.eventChannels() {
		ch.reset()
	}
	viewRegistry.reset()

	for _, fn := range builtinInits {
		fn()
	}
}

package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch installs the function that runs callbacks on the host's
// UI thread. Hosts call it once at startup; nil removes it.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch hands callback to the registered UI-thread dispatcher. It
// reports false, without running callback, when none is registered.
func Dispatch(callback func()) bool {
	if callback == nil {
		return false
	}
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil {
		return false
	}
	fn(callback)
	return true
}

// RunOnUI dispatches callback to the UI thread, or runs it on the calling
// goroutine when the host has not registered a dispatcher.
func RunOnUI(callback func()) {
	if callback != nil && !Dispatch(callback) {
		callback()
	}
}

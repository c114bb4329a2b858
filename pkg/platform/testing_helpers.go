package platform

// nullBridge answers every native call with an empty result.
type nullBridge struct{}

func (nullBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return []byte("null"), nil
}

func (nullBridge) StartEventStream(string) error { return nil }
func (nullBridge) StopEventStream(string) error  { return nil }

// SetupTestBridge makes the package usable from tests without a device:
// native calls succeed with empty results and callbacks run synchronously
// on the goroutine that delivered the event. Pass t.Cleanup; it schedules
// [ResetForTest].
//
//	platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) {
	SetNativeBridge(nullBridge{})
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

package platform

import "errors"

var (
	// ErrPlatformUnavailable is returned when no native bridge is installed.
	ErrPlatformUnavailable = errors.New("platform: no native bridge")

	// ErrChannelNotFound is returned for a call on an unregistered method channel.
	ErrChannelNotFound = errors.New("platform: channel not found")

	// ErrMethodNotFound is returned when a channel has no handler for a method.
	ErrMethodNotFound = errors.New("platform: method not implemented")

	// ErrViewTypeNotFound is returned when no factory is registered for a view type.
	ErrViewTypeNotFound = errors.New("platform: view type not registered")

	// ErrViewNotFound is reported when native sends an event for an unknown view.
	ErrViewNotFound = errors.New("platform: view not found")

	// ErrDisposed is returned by controller methods after Dispose, or when
	// the controller's view could not be created.
	ErrDisposed = errors.New("platform: controller disposed")
)

// ChannelError is an error sent by native code on an event channel.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewChannelError returns a ChannelError without details.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}

package errors

import (
	"sync"

	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that writes errors to a zap logger.
// The zero value logs to stderr with a production logger.
type LogHandler struct {
	// Logger receives the log entries. Nil selects a production logger.
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool

	once     sync.Once
	fallback *zap.Logger
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	h.once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		h.fallback = l
	})
	return h.fallback
}

// HandleError logs a CheckoutError.
func (h *LogHandler) HandleError(err *CheckoutError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Error(err.Err),
	}
	if h.Verbose {
		fields = append(fields, zap.Stringer("kind", err.Kind), zap.Time("at", err.Timestamp))
		if err.Channel != "" {
			fields = append(fields, zap.String("channel", err.Channel))
		}
		if err.StackTrace != "" {
			fields = append(fields, zap.String("stack", err.StackTrace))
		}
	}
	h.logger().Error("checkout error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{zap.Any("value", err.Value)}
	if err.Op != "" {
		fields = append(fields, zap.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("checkout panic", fields...)
}

package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckoutErrorString(t *testing.T) {
	err := &CheckoutError{
		Op:   "checkout.Cart.Mount",
		Kind: KindPlatform,
		Err:  fmt.Errorf("view not created"),
	}
	want := "checkout.Cart.Mount [platform]: view not created"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCheckoutErrorWithChannel(t *testing.T) {
	err := &CheckoutError{
		Op:      "platform.HandleEvent",
		Kind:    KindParsing,
		Channel: "checkout/platform_views",
		Err:     &ParseError{Channel: "checkout/platform_views", DataType: "map", Got: nil},
	}
	want := "channel=checkout/platform_views"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestCheckoutErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &CheckoutError{Op: "op", Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the underlying error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindConfig, "config"},
		{KindNetwork, "network"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "checkout.Listener.OnSuccess"
	if got, want := err.Error(), "panic in checkout.Listener.OnSuccess: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorString(t *testing.T) {
	err := &ParseError{Channel: "checkout/test", DataType: "TestEvent", Got: 123}
	want := "failed to parse TestEvent from channel checkout/test: got int"
	if got := err.Error(); got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *CheckoutError
	withHandler(t, &testHandler{onError: func(err *CheckoutError) { captured = err }})

	Report(&CheckoutError{Op: "test.op", Kind: KindConfig, Err: fmt.Errorf("bad site")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	withHandler(t, &testHandler{onError: func(*CheckoutError) { called = true }})

	Report(nil)
	ReportPanic(nil)

	if called {
		t.Error("nil errors should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	withHandler(t, &testHandler{onPanic: func(err *PanicError) { captured = err }})

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	withHandler(t, &testHandler{})

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	defer SetHandler(old)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := &LogHandler{Logger: zap.New(core), Verbose: true}

	h.HandleError(&CheckoutError{
		Op:      "platform.HandleEvent",
		Kind:    KindPlatform,
		Channel: "checkout/platform_views",
		Err:     fmt.Errorf("no such view"),
	})
	h.HandlePanic(&PanicError{Op: "checkout.debounce", Value: "boom", StackTrace: "frame"})
	h.HandleError(nil)

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["op"] != "platform.HandleEvent" {
		t.Errorf("op field = %v", fields["op"])
	}
	if fields["channel"] != "checkout/platform_views" {
		t.Errorf("channel field = %v", fields["channel"])
	}
	if fields["kind"] != "platform" {
		t.Errorf("kind field = %v", fields["kind"])
	}
	if entries[1].ContextMap()["stack"] != "frame" {
		t.Errorf("expected stack on verbose panic entry, got %v", entries[1].ContextMap())
	}
}

func withHandler(t *testing.T, h ErrorHandler) {
	t.Helper()
	old := DefaultHandler
	SetHandler(h)
	t.Cleanup(func() { SetHandler(old) })
}

type testHandler struct {
	onError func(*CheckoutError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *CheckoutError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "TestCaptureStack") {
		t.Errorf("stack should start at the caller, got:\n%s", stack)
	}
	if strings.Contains(stack, "captureStack") {
		t.Errorf("stack should not include its own frames, got:\n%s", stack)
	}
}

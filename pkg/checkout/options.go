package checkout

import (
	"net/http"
	"time"

	"github.com/go-drift/checkout/pkg/platform"
	"go.uber.org/zap"
)

// Option configures a [Cart].
type Option func(*options)

type options struct {
	logger     *zap.Logger
	clock      Clock
	delay      time.Duration
	beacon     *Beacon
	noBeacon   bool
	httpClient *http.Client
	classifier StepClassifier
	settings   platform.WebViewSettings
}

func defaultOptions() options {
	return options{
		logger:     zap.NewNop(),
		clock:      systemClock{},
		delay:      DefaultDebounceDelay,
		classifier: StepName,
		settings:   platform.DefaultWebViewSettings(),
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock that drives the navigation debounce.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDebounceDelay overrides [DefaultDebounceDelay].
func WithDebounceDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithHTTPClient sets the client used by the default beacon.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBeacon replaces the default beacon.
func WithBeacon(b *Beacon) Option {
	return func(o *options) { o.beacon = b }
}

// WithoutBeacon disables the diagnostic beacon.
func WithoutBeacon() Option {
	return func(o *options) { o.noBeacon = true }
}

// WithStepClassifier replaces [StepName] for recognizing steps.
func WithStepClassifier(c StepClassifier) Option {
	return func(o *options) { o.classifier = c }
}

// WithWebViewSettings replaces [platform.DefaultWebViewSettings]. The
// navigation listener script is always injected.
func WithWebViewSettings(s platform.WebViewSettings) Option {
	return func(o *options) { o.settings = s }
}

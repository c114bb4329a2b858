package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	cberrors "github.com/go-drift/checkout/pkg/errors"
	"github.com/go-drift/checkout/pkg/platform"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lifecycle errors returned by [Cart] methods.
var (
	ErrNilListener     = errors.New("checkout: listener is required")
	ErrAlreadyMounted  = errors.New("checkout: cart already mounted")
	ErrDisposed        = errors.New("checkout: cart disposed")
	ErrViewUnavailable = errors.New("checkout: web view could not be created")
)

// Cart shows a hosted checkout page and reports its progress to a
// [Listener].
//
// The checkout URL is computed once by [NewCart]. [Cart.Mount] creates the
// native web view, loads the page and sends the diagnostic beacon.
// Navigation reported by the web view, either through its navigation
// callback or through messages from [URLListenerScript], is debounced and
// classified with [ClassifyWith].
//
// The loading flag starts true and turns false on the first page-finished
// event. It never turns true again, even when the page navigates.
//
// Set callback fields before calling Mount. All methods are safe for
// concurrent use.
type Cart struct {
	cfg       Config
	listener  Listener
	planURL   string
	sessionID string
	opts      options
	debouncer *Debouncer

	mu         sync.Mutex
	loading    bool
	mounted    bool
	disposed   bool
	controller *platform.WebViewController

	// OnLoadingChanged is called once, with false, when the page first
	// finishes loading. Called on the UI thread.
	OnLoadingChanged func(loading bool)

	// OnLoadError is called when the web view fails to load a page. The
	// code is one of the platform.ErrCode constants. The listener is not
	// told. Called on the UI thread.
	OnLoadError func(code, message string)
}

// NewCart validates cfg and computes the checkout URL. The listener is
// required; if it also implements [StepListener] it receives step events.
func NewCart(cfg Config, listener Listener, opts ...Option) (*Cart, error) {
	if listener == nil {
		return nil, ErrNilListener
	}
	planURL, err := BuildURL(cfg)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.beacon == nil && !o.noBeacon {
		o.beacon = &Beacon{Client: o.httpClient, Logger: o.logger}
	}

	c := &Cart{
		cfg:       cfg,
		listener:  listener,
		planURL:   planURL,
		sessionID: uuid.NewString(),
		opts:      o,
		loading:   true,
	}
	c.opts.logger = o.logger.With(zap.String("session", c.sessionID), zap.String("site", cfg.Site))
	c.debouncer = NewDebouncer(o.delay, o.clock, c.handleNavigation)
	return c, nil
}

// PlanURL returns the checkout page address.
func (c *Cart) PlanURL() string {
	return c.planURL
}

// SessionID identifies this cart in log output.
func (c *Cart) SessionID() string {
	return c.sessionID
}

// IsLoading reports whether the loading indicator should be visible.
func (c *Cart) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ViewID returns the platform view ID of the web view, or 0 before Mount
// and after Dispose. Hosts embed the native view by this ID.
func (c *Cart) ViewID() int64 {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()
	if ctrl == nil {
		return 0
	}
	return ctrl.ViewID()
}

// Mount creates the web view, starts loading the checkout page and sends
// the diagnostic beacon in the background. A cart can be mounted once;
// Mount may be retried after it returns [ErrViewUnavailable].
func (c *Cart) Mount(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.disposed:
		c.mu.Unlock()
		return ErrDisposed
	case c.mounted:
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.mu.Unlock()

	settings := c.opts.settings
	settings.InjectedJavaScript = URLListenerScript
	ctrl := platform.NewWebViewController(settings)
	if ctrl.ViewID() == 0 {
		c.mu.Lock()
		c.mounted = false
		c.mu.Unlock()
		return ErrViewUnavailable
	}

	ctrl.OnNavigationStateChange = func(state platform.NavigationState) {
		c.debouncer.Call(state.URL)
	}
	ctrl.OnMessage = func(msg platform.WebViewMessage) {
		if msg.Data == NavigationMessage {
			c.debouncer.Call(msg.URL)
		}
	}
	ctrl.OnPageFinished = func(string) {
		c.hideSpinner()
	}
	ctrl.OnError = func(code, message string) {
		c.opts.logger.Warn("checkout page failed to load", zap.String("code", code), zap.String("message", message))
		if c.OnLoadError != nil {
			c.OnLoadError(code, message)
		}
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		ctrl.Dispose()
		return ErrDisposed
	}
	c.controller = ctrl
	c.mu.Unlock()

	if c.opts.beacon != nil {
		c.opts.beacon.Notify(ctx, c.cfg.Site)
	}

	if err := ctrl.Load(c.planURL); err != nil {
		cberrors.Report(&cberrors.CheckoutError{
			Op:   "checkout.Cart.Mount",
			Kind: cberrors.KindPlatform,
			Err:  err,
		})
		return fmt.Errorf("checkout: load %s: %w", c.planURL, err)
	}
	c.opts.logger.Debug("checkout page loading", zap.String("url", c.planURL))
	return nil
}

// Dispose drops pending navigation events and releases the web view.
// Dispose is idempotent.
func (c *Cart) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	ctrl := c.controller
	c.controller = nil
	c.mu.Unlock()

	c.debouncer.Stop()
	if ctrl != nil {
		ctrl.Dispose()
	}
}

func (c *Cart) hideSpinner() {
	c.mu.Lock()
	if !c.loading {
		c.mu.Unlock()
		return
	}
	c.loading = false
	cb := c.OnLoadingChanged
	c.mu.Unlock()

	if cb != nil {
		cb(false)
	}
}

// handleNavigation classifies url and notifies the listener. It runs once
// per debounced burst.
func (c *Cart) handleNavigation(url string) {
	outcome := ClassifyWith(url, c.opts.classifier)
	switch outcome.Kind {
	case OutcomeCompleted:
		c.opts.logger.Info("checkout completed", zap.String("hosted_page_id", outcome.HostedPageID))
		c.notify("checkout.Listener.OnSuccess", func() {
			c.listener.OnSuccess(outcome.HostedPageID)
		})
	case OutcomeStep:
		sl, ok := c.listener.(StepListener)
		if !ok {
			return
		}
		c.opts.logger.Debug("checkout step", zap.String("step", outcome.Step))
		c.notify("checkout.StepListener.OnEachStep", func() {
			sl.OnEachStep(outcome.Step)
		})
	}
}

// notify calls into host code. A panic is reported instead of unwinding
// through the UI thread or a timer goroutine.
func (c *Cart) notify(op string, fn func()) {
	defer cberrors.Recover(op)
	fn()
}

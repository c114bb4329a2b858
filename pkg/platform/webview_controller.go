package platform

import (
	"fmt"
	"sync"

	"github.com/go-drift/checkout/pkg/errors"
)

// WebViewSettings configures the native browser that renders a hosted page.
// They are sent to native once, when the view is created.
type WebViewSettings struct {
	JavaScriptEnabled   bool
	DOMStorageEnabled   bool
	OriginWhitelist     []string
	ScalesPageToFit     bool
	TextZoom            int
	StartInLoadingState bool

	// InjectedJavaScript runs in every page after it loads.
	InjectedJavaScript string
}

// DefaultWebViewSettings returns the settings hosted checkout pages need:
// scripts and DOM storage on, every origin allowed, and text zoom pinned
// at 100 so the page ignores the system font scale.
func DefaultWebViewSettings() WebViewSettings {
	return WebViewSettings{
		JavaScriptEnabled:   true,
		DOMStorageEnabled:   true,
		OriginWhitelist:     []string{"*"},
		ScalesPageToFit:     true,
		TextZoom:            100,
		StartInLoadingState: true,
	}
}

func (s WebViewSettings) params() map[string]any {
	origins := make([]any, len(s.OriginWhitelist))
	for i, o := range s.OriginWhitelist {
		origins[i] = o
	}
	return map[string]any{
		"javaScriptEnabled":   s.JavaScriptEnabled,
		"domStorageEnabled":   s.DOMStorageEnabled,
		"originWhitelist":     origins,
		"scalesPageToFit":     s.ScalesPageToFit,
		"textZoom":            s.TextZoom,
		"startInLoadingState": s.StartInLoadingState,
		"injectedJavaScript":  s.InjectedJavaScript,
	}
}

// WebViewController provides control over the native web view that hosts a
// checkout page. The controller creates its platform view eagerly, so
// methods and callbacks work immediately after construction.
//
//	c := platform.NewWebViewController(platform.DefaultWebViewSettings())
//	c.OnPageFinished = func(url string) { ... }
//	c.Load("https://acme.chargebee.com/hosted_pages/checkout?...")
//
// Set callback fields before calling [WebViewController.Load] to ensure
// no events are missed.
//
// All methods are safe for concurrent use.
type WebViewController struct {
	mu     sync.RWMutex
	view   *hostedPageView // guarded by mu
	viewID int64           // guarded by mu

	// OnPageStarted is called when a page starts loading.
	// Called on the UI thread.
	OnPageStarted func(url string)

	// OnPageFinished is called when a page finishes loading, whether or not
	// it loaded successfully. Called on the UI thread.
	OnPageFinished func(url string)

	// OnNavigationStateChange is called when the URL, title or loading
	// state of the web view changes. Some platforms fire it several times
	// for a single navigation. Called on the UI thread.
	OnNavigationStateChange func(state NavigationState)

	// OnMessage is called when page script posts a message to native.
	// Called on the UI thread.
	OnMessage func(msg WebViewMessage)

	// OnError is called when a loading error occurs.
	// The code parameter is one of [ErrCodeNetworkError], [ErrCodeSSLError],
	// or [ErrCodeLoadFailed]. Called on the UI thread.
	OnError func(code, message string)
}

// NewWebViewController creates a new web view controller.
// The underlying platform view is created eagerly so methods and callbacks
// work immediately. If the view cannot be created the failure is reported,
// ViewID returns 0 and every method returns [ErrDisposed].
func NewWebViewController(settings WebViewSettings) *WebViewController {
	c := &WebViewController{}

	view, err := GetPlatformViewRegistry().Create(hostedPageViewType, settings.params())
	if err != nil {
		errors.Report(&errors.CheckoutError{
			Op:   "platform.NewWebViewController",
			Kind: errors.KindPlatform,
			Err:  fmt.Errorf("failed to create webview: %w", err),
		})
		return c
	}

	webView, ok := view.(*hostedPageView)
	if !ok {
		errors.Report(&errors.CheckoutError{
			Op:   "platform.NewWebViewController",
			Kind: errors.KindPlatform,
			Err:  fmt.Errorf("unexpected view type: %T", view),
		})
		return c
	}

	c.view = webView
	c.viewID = webView.ViewID()

	webView.mu.Lock()
	webView.onPageStarted = func(url string) {
		if c.OnPageStarted != nil {
			c.OnPageStarted(url)
		}
	}
	webView.onPageFinished = func(url string) {
		if c.OnPageFinished != nil {
			c.OnPageFinished(url)
		}
	}
	webView.onNavigationStateChange = func(state NavigationState) {
		if c.OnNavigationStateChange != nil {
			c.OnNavigationStateChange(state)
		}
	}
	webView.onMessage = func(msg WebViewMessage) {
		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
	webView.onError = func(code, message string) {
		if c.OnError != nil {
			c.OnError(code, message)
		}
	}
	webView.mu.Unlock()

	return c
}

// ViewID returns the platform view ID, or 0 if the view was not created.
func (c *WebViewController) ViewID() int64 {
	c.mu.RLock()
	id := c.viewID
	c.mu.RUnlock()
	return id
}

func (c *WebViewController) invoke(method string, args map[string]any) error {
	id := c.ViewID()
	if id == 0 {
		return ErrDisposed
	}
	_, err := GetPlatformViewRegistry().InvokeViewMethod(id, method, args)
	return err
}

// Load loads the specified URL.
func (c *WebViewController) Load(url string) error {
	return c.invoke("load", map[string]any{"url": url})
}

// InjectJavaScript evaluates script in the current page.
func (c *WebViewController) InjectJavaScript(script string) error {
	return c.invoke("injectJavaScript", map[string]any{"script": script})
}

// GoBack navigates back in history.
func (c *WebViewController) GoBack() error {
	return c.invoke("goBack", nil)
}

// GoForward navigates forward in history.
func (c *WebViewController) GoForward() error {
	return c.invoke("goForward", nil)
}

// Reload reloads the current page.
func (c *WebViewController) Reload() error {
	return c.invoke("reload", nil)
}

// SetVisible shows or hides the native view.
func (c *WebViewController) SetVisible(visible bool) error {
	c.mu.RLock()
	view := c.view
	c.mu.RUnlock()
	if view == nil {
		return ErrDisposed
	}
	view.SetVisible(visible)
	return nil
}

// Dispose releases the web view and its native resources. After disposal,
// this controller must not be reused. Dispose is idempotent; calling it more
// than once is safe.
func (c *WebViewController) Dispose() {
	c.mu.Lock()
	id := c.viewID
	c.view = nil
	c.viewID = 0
	c.mu.Unlock()
	if id != 0 {
		GetPlatformViewRegistry().Dispose(id)
	}
}

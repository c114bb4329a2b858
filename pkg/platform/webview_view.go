package platform

import "sync"

// hostedPageViewType is the native view type of the checkout web view.
const hostedPageViewType = "hosted_page_webview"

// Load error codes sent with onWebViewError. Both native implementations
// map their own failures onto these.
const (
	ErrCodeNetworkError = "network_error" // DNS, connectivity or timeout
	ErrCodeSSLError     = "ssl_error"     // untrusted or expired certificate
	ErrCodeLoadFailed   = "load_failed"   // anything else
)

type hostedPageViewFactory struct{}

func (hostedPageViewFactory) ViewType() string {
	return hostedPageViewType
}

func (hostedPageViewFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	return &hostedPageView{
		basePlatformView: basePlatformView{
			viewID:   viewID,
			viewType: hostedPageViewType,
		},
	}, nil
}

// NavigationState describes the web view after a navigation change.
type NavigationState struct {
	URL          string
	Title        string
	Loading      bool
	CanGoBack    bool
	CanGoForward bool
}

// WebViewMessage is a message posted by page script through the native
// message bridge, together with the URL of the page that posted it.
type WebViewMessage struct {
	Data string
	URL  string
}

type hostedPageView struct {
	basePlatformView
	mu sync.RWMutex

	onPageStarted           func(url string)
	onPageFinished          func(url string)
	onNavigationStateChange func(state NavigationState)
	onMessage               func(msg WebViewMessage)
	onError                 func(code, message string)
}

func (v *hostedPageView) Create(params map[string]any) error {
	return nil
}

func (v *hostedPageView) Dispose() {
	v.mu.Lock()
	v.onPageStarted = nil
	v.onPageFinished = nil
	v.onNavigationStateChange = nil
	v.onMessage = nil
	v.onError = nil
	v.mu.Unlock()
}

// handleEvent decodes a native event and runs the matching callback on the
// UI thread. Callbacks are copied first so one may dispose the view.
func (v *hostedPageView) handleEvent(method string, args map[string]any) {
	v.mu.RLock()
	onPageStarted := v.onPageStarted
	onPageFinished := v.onPageFinished
	onNavigationStateChange := v.onNavigationStateChange
	onMessage := v.onMessage
	onError := v.onError
	v.mu.RUnlock()

	switch method {
	case "onPageStarted":
		if cb := onPageStarted; cb != nil {
			url := stringArg(args, "url")
			RunOnUI(func() { cb(url) })
		}
	case "onPageFinished":
		if cb := onPageFinished; cb != nil {
			url := stringArg(args, "url")
			RunOnUI(func() { cb(url) })
		}
	case "onNavigationStateChange":
		if cb := onNavigationStateChange; cb != nil {
			state := NavigationState{
				URL:          stringArg(args, "url"),
				Title:        stringArg(args, "title"),
				Loading:      boolArg(args, "loading"),
				CanGoBack:    boolArg(args, "canGoBack"),
				CanGoForward: boolArg(args, "canGoForward"),
			}
			RunOnUI(func() { cb(state) })
		}
	case "onMessage":
		if cb := onMessage; cb != nil {
			msg := WebViewMessage{
				Data: stringArg(args, "data"),
				URL:  stringArg(args, "url"),
			}
			RunOnUI(func() { cb(msg) })
		}
	case "onWebViewError":
		if cb := onError; cb != nil {
			code, message := stringArg(args, "code"), stringArg(args, "message")
			RunOnUI(func() { cb(code, message) })
		}
	}
}

func init() {
	GetPlatformViewRegistry().RegisterFactory(hostedPageViewFactory{})
}

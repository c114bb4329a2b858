package platform

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/checkout/pkg/errors"
)

// platformViewsChannel carries view lifecycle calls to native and view
// events back to Go.
const platformViewsChannel = "checkout/platform_views"

// PlatformView represents a native view embedded in the host UI.
type PlatformView interface {
	// ViewID returns the unique identifier for this view.
	ViewID() int64

	// ViewType returns the type identifier for this view (e.g., "hosted_page_webview").
	ViewType() string

	// Create initializes the native view with given parameters.
	Create(params map[string]any) error

	// Dispose cleans up the native view.
	Dispose()

	// SetVisible shows or hides the native view.
	SetVisible(visible bool)
}

// PlatformViewFactory creates platform views of a specific type.
type PlatformViewFactory interface {
	// Create creates a new platform view instance.
	Create(viewID int64, params map[string]any) (PlatformView, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// viewEventHandler is implemented by views that receive native events.
type viewEventHandler interface {
	handleEvent(method string, args map[string]any)
}

// PlatformViewRegistry manages platform view types and instances.
type PlatformViewRegistry struct {
	factories map[string]PlatformViewFactory
	views     map[int64]PlatformView
	nextID    atomic.Int64
	mu        sync.RWMutex
	channel   *MethodChannel
	events    *EventChannel
}

var viewRegistry = newPlatformViewRegistry()

// GetPlatformViewRegistry returns the global platform view registry.
func GetPlatformViewRegistry() *PlatformViewRegistry {
	return viewRegistry
}

func newPlatformViewRegistry() *PlatformViewRegistry {
	r := &PlatformViewRegistry{
		factories: make(map[string]PlatformViewFactory),
		views:     make(map[int64]PlatformView),
		channel:   NewMethodChannel(platformViewsChannel),
		events:    NewEventChannel(platformViewsChannel),
	}
	r.channel.SetHandler(r.handleMethodCall)
	return r
}

func init() {
	registerBuiltinInit(func() {
		viewRegistry.events.Listen(EventHandler{
			OnEvent: viewRegistry.handleEvent,
		})
	})
}

// RegisterFactory registers a factory for a platform view type.
func (r *PlatformViewRegistry) RegisterFactory(factory PlatformViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create creates a new platform view of the given type.
func (r *PlatformViewRegistry) Create(viewType string, params map[string]any) (PlatformView, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)

	view, err := factory.Create(viewID, params)
	if err != nil {
		return nil, err
	}
	if err := view.Create(params); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	// Notify native to create the view
	_, err = r.channel.Invoke("create", map[string]any{
		"viewId":   viewID,
		"viewType": viewType,
		"params":   params,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.views, viewID)
		r.mu.Unlock()
		return nil, err
	}

	return view, nil
}

// Dispose destroys a platform view.
func (r *PlatformViewRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	view, ok := r.views[viewID]
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()

	if ok {
		view.Dispose()
		if _, err := r.channel.Invoke("dispose", map[string]any{"viewId": viewID}); err != nil {
			errors.Report(&errors.CheckoutError{
				Op:      "platform.PlatformViewRegistry.Dispose",
				Kind:    errors.KindPlatform,
				Channel: platformViewsChannel,
				Err:     err,
			})
		}
	}
}

// GetView returns a platform view by ID.
func (r *PlatformViewRegistry) GetView(viewID int64) PlatformView {
	r.mu.RLock()
	view := r.views[viewID]
	r.mu.RUnlock()
	return view
}

// SetViewVisible notifies native to show or hide a view.
func (r *PlatformViewRegistry) SetViewVisible(viewID int64, visible bool) error {
	_, err := r.channel.Invoke("setVisible", map[string]any{
		"viewId":  viewID,
		"visible": visible,
	})
	return err
}

// InvokeViewMethod invokes a method on a specific platform view.
func (r *PlatformViewRegistry) InvokeViewMethod(viewID int64, method string, args map[string]any) (any, error) {
	invokeArgs := make(map[string]any, len(args)+2)
	for k, v := range args {
		invokeArgs[k] = v
	}
	invokeArgs["viewId"] = viewID
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeViewMethod", invokeArgs)
}

func (r *PlatformViewRegistry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onViewCreated", "onViewDisposed":
		return nil, nil
	default:
		return nil, ErrMethodNotFound
	}
}

// handleEvent routes a native view event to the view named by its viewId.
// Events must carry "method" and "viewId" keys.
func (r *PlatformViewRegistry) handleEvent(data any) {
	args, ok := data.(map[string]any)
	if !ok {
		r.reportEventError(&errors.ParseError{Channel: platformViewsChannel, DataType: "map[string]any", Got: data})
		return
	}
	method := stringArg(args, "method")
	viewID, ok := toInt64(args["viewId"])
	if method == "" || !ok {
		r.reportEventError(&errors.ParseError{Channel: platformViewsChannel, DataType: "view event", Got: data})
		return
	}

	view := r.GetView(viewID)
	if view == nil {
		r.reportEventError(fmt.Errorf("%w: %d", ErrViewNotFound, viewID))
		return
	}
	if h, ok := view.(viewEventHandler); ok {
		h.handleEvent(method, args)
	}
}

func (r *PlatformViewRegistry) reportEventError(err error) {
	kind := errors.KindPlatform
	if _, ok := err.(*errors.ParseError); ok {
		kind = errors.KindParsing
	}
	errors.Report(&errors.CheckoutError{
		Op:      "platform.PlatformViewRegistry.handleEvent",
		Kind:    kind,
		Channel: platformViewsChannel,
		Err:     err,
	})
}

func (r *PlatformViewRegistry) reset() {
	r.mu.Lock()
	r.views = make(map[int64]PlatformView)
	r.mu.Unlock()
	r.nextID.Store(0)
}

// basePlatformView provides common implementation for platform views.
type basePlatformView struct {
	viewID   int64
	viewType string
	visible  atomic.Bool
}

func (v *basePlatformView) ViewID() int64 {
	return v.viewID
}

func (v *basePlatformView) ViewType() string {
	return v.viewType
}

func (v *basePlatformView) SetVisible(visible bool) {
	v.visible.Store(visible)
	if err := GetPlatformViewRegistry().SetViewVisible(v.viewID, visible); err != nil {
		errors.Report(&errors.CheckoutError{
			Op:      "platform.SetVisible",
			Kind:    errors.KindPlatform,
			Channel: platformViewsChannel,
			Err:     err,
		})
	}
}

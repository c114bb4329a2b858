package checkout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const (
	beaconPath      = "/api/internal/track_info_error"
	beaconRefModule = "cb_reactNative_sdk"
	beaconAction    = "Hosted Page"
	beaconKey       = "cb.logging"
)

// Beacon sends the diagnostic request a cart issues when it is first shown.
// The zero value is ready to use.
type Beacon struct {
	// Client sends the request. Nil uses http.DefaultClient.
	Client *http.Client

	// BaseURL replaces https://{site}.chargebee.com when set.
	BaseURL string

	// Logger receives discarded failures at debug level. Nil disables logging.
	Logger *zap.Logger
}

// Request builds the beacon request for site.
func (b *Beacon) Request(ctx context.Context, site string) (*http.Request, error) {
	base := b.BaseURL
	if base == "" {
		base = SiteURL(site)
	}
	q := url.Values{}
	q.Set("ref_module", beaconRefModule)
	q.Set("site", site)
	q.Set("action", beaconAction)
	q.Set("key", beaconKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+beaconPath+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Send issues the beacon and waits for the response. A non-2xx status is
// returned as an error.
func (b *Beacon) Send(ctx context.Context, site string) error {
	req, err := b.Request(ctx, site)
	if err != nil {
		return fmt.Errorf("beacon: %w", err)
	}
	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("beacon: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("beacon: unexpected status %s", resp.Status)
	}
	return nil
}

// Notify sends the beacon in the background and returns immediately. The
// request ignores cancellation of ctx and its outcome is discarded.
func (b *Beacon) Notify(ctx context.Context, site string) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := b.Send(ctx, site); err != nil && b.Logger != nil {
			b.Logger.Debug("diagnostic beacon failed", zap.String("site", site), zap.Error(err))
		}
	}()
}

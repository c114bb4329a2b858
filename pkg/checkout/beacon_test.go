package checkout

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type beaconHit struct {
	method      string
	path        string
	query       map[string]string
	contentType string
	body        string
}

func newBeaconServer(t *testing.T, status int) (*httptest.Server, <-chan beaconHit) {
	t.Helper()
	hits := make(chan beaconHit, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		query := make(map[string]string)
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		hits <- beaconHit{
			method:      r.Method,
			path:        r.URL.Path,
			query:       query,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestBeacon_Send(t *testing.T) {
	srv, hits := newBeaconServer(t, http.StatusOK)
	b := &Beacon{BaseURL: srv.URL, Client: srv.Client()}

	if err := b.Send(context.Background(), "acme-test"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	hit := <-hits
	if hit.method != http.MethodPost {
		t.Errorf("method = %s, want POST", hit.method)
	}
	if hit.path != "/api/internal/track_info_error" {
		t.Errorf("path = %s", hit.path)
	}
	want := map[string]string{
		"ref_module": "cb_reactNative_sdk",
		"site":       "acme-test",
		"action":     "Hosted Page",
		"key":        "cb.logging",
	}
	for k, v := range want {
		if hit.query[k] != v {
			t.Errorf("query %s = %q, want %q", k, hit.query[k], v)
		}
	}
	if len(hit.query) != len(want) {
		t.Errorf("query = %v", hit.query)
	}
	if hit.contentType != "application/json" {
		t.Errorf("Content-Type = %q", hit.contentType)
	}
	if hit.body != "" {
		t.Errorf("body = %q, want empty", hit.body)
	}
}

func TestBeacon_RequestDefaultsToSiteHost(t *testing.T) {
	req, err := (&Beacon{}).Request(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.URL.Host != "acme.chargebee.com" || req.URL.Scheme != "https" {
		t.Errorf("URL = %s", req.URL)
	}
}

func TestBeacon_SendReportsBadStatus(t *testing.T) {
	srv, _ := newBeaconServer(t, http.StatusInternalServerError)
	b := &Beacon{BaseURL: srv.URL, Client: srv.Client()}

	err := b.Send(context.Background(), "acme")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("Send error = %v, want status 500", err)
	}
}

func TestBeacon_NotifyIgnoresCancellation(t *testing.T) {
	srv, hits := newBeaconServer(t, http.StatusOK)
	b := &Beacon{BaseURL: srv.URL, Client: srv.Client()}

	ctx, cancel := context.WithCancel(context.Background())
	b.Notify(ctx, "acme")
	cancel()

	select {
	case hit := <-hits:
		if hit.query["site"] != "acme" {
			t.Errorf("site = %q", hit.query["site"])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("beacon never arrived")
	}
}

func TestBeacon_NotifySwallowsFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	core, logs := observer.New(zap.DebugLevel)
	b := &Beacon{BaseURL: base, Logger: zap.New(core)}

	b.Notify(context.Background(), "acme")

	deadline := time.Now().Add(5 * time.Second)
	for logs.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("failure was never logged")
		}
		time.Sleep(10 * time.Millisecond)
	}
	entry := logs.All()[0]
	if entry.Level != zap.DebugLevel {
		t.Errorf("failure logged at %s, want debug", entry.Level)
	}
}

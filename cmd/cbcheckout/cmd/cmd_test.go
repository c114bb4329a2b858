package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/checkout/cmd/cbcheckout/internal/config"
	"github.com/go-drift/checkout/pkg/checkout"
	cberrors "github.com/go-drift/checkout/pkg/errors"
)

// run executes the CLI with args and returns everything it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.SiteEnv, "")
	old := cberrors.DefaultHandler
	t.Cleanup(func() { cberrors.SetHandler(old) })

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkout.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func queryOf(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		t.Fatalf("output is not a URL: %q", raw)
	}
	return u.Query()
}

func TestURLCommand_Flags(t *testing.T) {
	out, err := run(t, "url", "--site", "acme-test", "--item", "pro-USD-monthly:2", "--item", "seat-USD", "--coupon", "WELCOME10", "--layout", "in_app")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if !strings.HasPrefix(out, "https://acme-test.chargebee.com/hosted_pages/checkout?") {
		t.Fatalf("unexpected URL %q", out)
	}
	q := queryOf(t, out)
	checks := map[string]string{
		"subscription_items[item_price_id][0]": "pro-USD-monthly",
		"subscription_items[quantity][0]":      "2",
		"subscription_items[item_price_id][1]": "seat-USD",
		"coupon_ids[0]":                        "WELCOME10",
		"layout":                               "in_app",
	}
	for key, want := range checks {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if q.Has("subscription_items[quantity][1]") {
		t.Error("item without quantity should not send one")
	}
}

func TestURLCommand_ConfigFile(t *testing.T) {
	path := writeConfig(t, `site: acme
items:
  - item_price_id: basic-USD-yearly
`)

	out, err := run(t, "url", "--config", path)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	q := queryOf(t, out)
	if q.Get("subscription_items[item_price_id][0]") != "basic-USD-yearly" {
		t.Errorf("config items not used: %s", out)
	}

	out, err = run(t, "url", "--config", path, "--site", "acme-test")
	if err != nil {
		t.Fatalf("url --site: %v", err)
	}
	if !strings.HasPrefix(out, "https://acme-test.chargebee.com/") {
		t.Errorf("--site did not override the file: %s", out)
	}
}

func TestURLCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no site", []string{"url", "--item", "pro"}, checkout.ErrInvalidSite},
		{"no items", []string{"url", "--site", "acme"}, checkout.ErrNoItems},
		{"bad site flag", []string{"url", "--site", "Acme Inc", "--item", "pro"}, checkout.ErrInvalidSite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := run(t, "url", "--site", "acme", "--item", "pro:many"); err == nil {
		t.Error("expected an error for a non-numeric quantity")
	}
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify",
		"https://acme.chargebee.com/pages/v4/abc123/thank_you",
		"https://acme.chargebee.com/pages/v4/abc123/payment",
		"https://acme.chargebee.com/pages/v4/abc123/terms",
	)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	wants := [][]string{
		{"completed", "abc123"},
		{"step", checkout.StepPayment},
		{"unrecognized", "-"},
	}
	for i, want := range wants {
		fields := strings.Fields(lines[i])
		if len(fields) != 3 || fields[0] != want[0] || fields[1] != want[1] {
			t.Errorf("line %d = %q, want %v", i, lines[i], want)
		}
	}
}

func TestClassifyCommand_RequiresURL(t *testing.T) {
	if _, err := run(t, "classify"); err == nil {
		t.Error("expected an error without URLs")
	}
}

func TestStepsCommand(t *testing.T) {
	out, err := run(t, "steps")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	want := strings.Join(checkout.Steps(), "\n") + "\n"
	if out != want {
		t.Errorf("steps output = %q, want %q", out, want)
	}
}

func TestBeaconCommand(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := run(t, "beacon", "--site", "acme-test", "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("beacon: %v", err)
	}
	if !strings.Contains(out, "beacon sent for acme-test") {
		t.Errorf("output = %q", out)
	}
	if gotQuery.Get("site") != "acme-test" || gotQuery.Get("key") != "cb.logging" {
		t.Errorf("beacon query = %v", gotQuery)
	}
}

func TestBeaconCommand_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := run(t, "beacon", "--site", "acme-test", "--base-url", srv.URL); err == nil {
		t.Error("expected an error for a 502 response")
	}
	if _, err := run(t, "beacon"); err == nil {
		t.Error("expected an error without a site")
	}
}

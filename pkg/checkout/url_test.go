package checkout

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	cfg := Config{
		Site: "acme-test",
		Items: []Item{
			{ItemPriceID: "pro-USD-monthly", Quantity: 2},
			{ItemPriceID: "extra-seat-USD"},
		},
		CouponIDs: []string{"WELCOME10"},
		Customer:  &Customer{Email: "jo@example.com", FirstName: "Jo"},
		BillingAddress: &Address{
			Line1:   "1 Main St",
			City:    "Springfield",
			Country: "US",
		},
		Layout: LayoutInApp,
	}

	got, err := BuildURL(cfg)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}

	prefix := "https://acme-test.chargebee.com/hosted_pages/checkout?"
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("URL %q should start with %q", got, prefix)
	}
	q, err := url.ParseQuery(strings.TrimPrefix(got, prefix))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}

	want := map[string]string{
		"subscription_items[item_price_id][0]": "pro-USD-monthly",
		"subscription_items[quantity][0]":      "2",
		"subscription_items[item_price_id][1]": "extra-seat-USD",
		"coupon_ids[0]":                        "WELCOME10",
		"customer[email]":                      "jo@example.com",
		"customer[first_name]":                 "Jo",
		"billing_address[line1]":               "1 Main St",
		"billing_address[city]":                "Springfield",
		"billing_address[country]":             "US",
		"layout":                               "in_app",
	}
	for key, value := range want {
		if q.Get(key) != value {
			t.Errorf("%s = %q, want %q", key, q.Get(key), value)
		}
	}
	if len(q) != len(want) {
		t.Errorf("got %d query parameters, want %d: %v", len(q), len(want), q)
	}
}

func TestBuildURL_Deterministic(t *testing.T) {
	cfg := Config{
		Site:            "acme",
		Items:           []Item{{ItemPriceID: "basic"}},
		ShippingAddress: &Address{FirstName: "A", LastName: "B", Zip: "12345", State: "CA"},
	}
	first, _ := BuildURL(cfg)
	for i := 0; i < 10; i++ {
		if next, _ := BuildURL(cfg); next != first {
			t.Fatalf("BuildURL is not stable: %q vs %q", first, next)
		}
	}
}

func TestBuildURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"empty site", Config{Items: []Item{{ItemPriceID: "p"}}}, ErrInvalidSite},
		{"site with dot", Config{Site: "evil.com/x", Items: []Item{{ItemPriceID: "p"}}}, ErrInvalidSite},
		{"uppercase site", Config{Site: "Acme", Items: []Item{{ItemPriceID: "p"}}}, ErrInvalidSite},
		{"no items", Config{Site: "acme"}, ErrNoItems},
		{"missing price id", Config{Site: "acme", Items: []Item{{Quantity: 1}}}, ErrInvalidItem},
		{"negative quantity", Config{Site: "acme", Items: []Item{{ItemPriceID: "p", Quantity: -1}}}, ErrInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildURL(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("BuildURL error = %v, want %v", err, tt.want)
			}
		})
	}
}

package checkout

import (
	"net/url"
	"strings"
)

// Checkout step names reported to [StepListener.OnEachStep].
const (
	StepCart            = "cart_screen"
	StepAccount         = "account_screen"
	StepBillingAddress  = "billing_address_screen"
	StepShippingAddress = "shipping_address_screen"
	StepPayment         = "payment_screen"
	StepReview          = "review_screen"
)

// StepClassifier maps a hosted page URL to a step name, or "" when the URL
// is not a known step.
type StepClassifier func(rawURL string) string

// stepRoutes maps the route segment of a hosted page URL to its step.
var stepRoutes = map[string]string{
	"cart":             StepCart,
	"account":          StepAccount,
	"customer":         StepAccount,
	"billing":          StepBillingAddress,
	"billing_address":  StepBillingAddress,
	"shipping":         StepShippingAddress,
	"shipping_address": StepShippingAddress,
	"payment":          StepPayment,
	"payment_method":   StepPayment,
	"payment_methods":  StepPayment,
	"review":           StepReview,
	"confirm":          StepReview,
}

// Steps returns the known step names in checkout order.
func Steps() []string {
	return []string{StepCart, StepAccount, StepBillingAddress, StepShippingAddress, StepPayment, StepReview}
}

// StepName is the default [StepClassifier]. Hosted pages route either by
// path (/pages/v4/{id}/payment) or by fragment (/pages/v4/{id}/#/payment);
// the last segment of the fragment wins when there is one, otherwise the
// last segment of the path. Matching ignores case and the query string.
func StepName(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	route := lastSegment(u.Fragment)
	if route == "" {
		route = lastSegment(u.Path)
	}
	return stepRoutes[strings.ToLower(route)]
}

func lastSegment(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return p
}

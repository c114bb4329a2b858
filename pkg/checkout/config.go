package checkout

import (
	"errors"
	"fmt"
	"regexp"
)

// Configuration errors returned by [Config.Validate] and [NewCart].
var (
	ErrInvalidSite = errors.New("checkout: invalid site")
	ErrNoItems     = errors.New("checkout: at least one item is required")
	ErrInvalidItem = errors.New("checkout: invalid item")
)

// Layout selects how the hosted page arranges itself.
type Layout string

const (
	LayoutDefault  Layout = ""
	LayoutInApp    Layout = "in_app"
	LayoutFullPage Layout = "full_page"
)

// Config describes the checkout to open. It is supplied by the host
// application and can be loaded from YAML.
type Config struct {
	// Site is the Chargebee site name, e.g. "acme" or "acme-test".
	Site string `yaml:"site"`

	Items           []Item    `yaml:"items"`
	CouponIDs       []string  `yaml:"coupon_ids,omitempty"`
	Customer        *Customer `yaml:"customer,omitempty"`
	BillingAddress  *Address  `yaml:"billing_address,omitempty"`
	ShippingAddress *Address  `yaml:"shipping_address,omitempty"`
	Layout          Layout    `yaml:"layout,omitempty"`
}

// Item is a subscription item (plan, addon or charge) added to the cart.
type Item struct {
	ItemPriceID string `yaml:"item_price_id"`
	// Quantity of zero leaves the quantity to the hosted page.
	Quantity int `yaml:"quantity,omitempty"`
}

// Customer prefills the customer section of the hosted page.
type Customer struct {
	ID        string `yaml:"id,omitempty"`
	Email     string `yaml:"email,omitempty"`
	FirstName string `yaml:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty"`
	Company   string `yaml:"company,omitempty"`
	Phone     string `yaml:"phone,omitempty"`
	Locale    string `yaml:"locale,omitempty"`
}

// Address prefills a billing or shipping address.
type Address struct {
	FirstName string `yaml:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty"`
	Email     string `yaml:"email,omitempty"`
	Company   string `yaml:"company,omitempty"`
	Phone     string `yaml:"phone,omitempty"`
	Line1     string `yaml:"line1,omitempty"`
	Line2     string `yaml:"line2,omitempty"`
	City      string `yaml:"city,omitempty"`
	StateCode string `yaml:"state_code,omitempty"`
	State     string `yaml:"state,omitempty"`
	Zip       string `yaml:"zip,omitempty"`
	Country   string `yaml:"country,omitempty"`
}

var siteName = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateSite reports whether site is usable as a Chargebee site name.
func ValidateSite(site string) error {
	if !siteName.MatchString(site) {
		return fmt.Errorf("%w: %q", ErrInvalidSite, site)
	}
	return nil
}

// Validate reports the first problem that would prevent building a
// checkout URL.
func (c Config) Validate() error {
	if err := ValidateSite(c.Site); err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return ErrNoItems
	}
	for i, item := range c.Items {
		if item.ItemPriceID == "" {
			return fmt.Errorf("%w: items[%d] has no item_price_id", ErrInvalidItem, i)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("%w: items[%d] has negative quantity %d", ErrInvalidItem, i, item.Quantity)
		}
	}
	return nil
}

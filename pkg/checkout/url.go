package checkout

import (
	"fmt"
	"net/url"
	"strconv"
)

// hostedDomain is the domain every Chargebee site is served under.
const hostedDomain = "chargebee.com"

const checkoutPath = "/hosted_pages/checkout"

// SiteURL returns the base URL of a Chargebee site.
func SiteURL(site string) string {
	return "https://" + site + "." + hostedDomain
}

// BuildURL returns the hosted checkout page address for cfg.
func BuildURL(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	q := url.Values{}
	for i, item := range cfg.Items {
		q.Set(fmt.Sprintf("subscription_items[item_price_id][%d]", i), item.ItemPriceID)
		if item.Quantity > 0 {
			q.Set(fmt.Sprintf("subscription_items[quantity][%d]", i), strconv.Itoa(item.Quantity))
		}
	}
	for i, id := range cfg.CouponIDs {
		q.Set(fmt.Sprintf("coupon_ids[%d]", i), id)
	}
	if c := cfg.Customer; c != nil {
		setFields(q, "customer", map[string]string{
			"id":         c.ID,
			"email":      c.Email,
			"first_name": c.FirstName,
			"last_name":  c.LastName,
			"company":    c.Company,
			"phone":      c.Phone,
			"locale":     c.Locale,
		})
	}
	if a := cfg.BillingAddress; a != nil {
		setFields(q, "billing_address", a.fields())
	}
	if a := cfg.ShippingAddress; a != nil {
		setFields(q, "shipping_address", a.fields())
	}
	if cfg.Layout != LayoutDefault {
		q.Set("layout", string(cfg.Layout))
	}

	return SiteURL(cfg.Site) + checkoutPath + "?" + q.Encode(), nil
}

func (a *Address) fields() map[string]string {
	return map[string]string{
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"email":      a.Email,
		"company":    a.Company,
		"phone":      a.Phone,
		"line1":      a.Line1,
		"line2":      a.Line2,
		"city":       a.City,
		"state_code": a.StateCode,
		"state":      a.State,
		"zip":        a.Zip,
		"country":    a.Country,
	}
}

// setFields adds prefix[name]=value for every non-empty value.
func setFields(q url.Values, prefix string, fields map[string]string) {
	for name, value := range fields {
		if value != "" {
			q.Set(prefix+"["+name+"]", value)
		}
	}
}

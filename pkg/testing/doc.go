// Package testing provides test doubles for the checkout component.
//
// FakeClock drives timers deterministically, so debounce behavior can be
// asserted without sleeping:
//
//	clk := checkouttest.NewFakeClock()
//	cart, _ := checkout.NewCart(cfg, listener, checkout.WithClock(clk))
//	...
//	clk.Advance(300 * time.Millisecond)
package testing

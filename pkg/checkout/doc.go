/*
Package checkout embeds a Chargebee hosted checkout page in a native web view
and reports checkout progress back to the host application.

A [Cart] builds the checkout URL from a [Config], creates the web view,
watches its navigation and calls the host's [Listener] when the purchase
completes. A listener that also implements [StepListener] is told about each
recognized checkout step:

	cart, err := checkout.NewCart(checkout.Config{
		Site:  "acme-test",
		Items: []checkout.Item{{ItemPriceID: "pro-USD-monthly", Quantity: 1}},
	}, checkout.Callbacks{
		Success:  func(id string) { log.Printf("purchased: %s", id) },
		EachStep: func(step string) { log.Printf("step: %s", step) },
	})
	if err != nil {
		return err
	}
	if err := cart.Mount(ctx); err != nil {
		return err
	}
	defer cart.Dispose()

Some platforms report a single navigation several times, so navigation
events are debounced per cart: only the last URL of a burst is classified,
[DefaultDebounceDelay] after the burst ends.

URL classification is available without a cart through [Classify].
*/
package checkout

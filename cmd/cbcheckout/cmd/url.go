package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/checkout/pkg/checkout"
	"github.com/spf13/cobra"
)

func init() {
	registerCommand(newURLCommand)
}

func newURLCommand(g *globals) *cobra.Command {
	var (
		items   []string
		coupons []string
		layout  string
	)
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the checkout page URL",
		Long: `Print the hosted checkout URL a cart would load.

Items come from the config file unless --item is given. An item is written
as ITEM_PRICE_ID or ITEM_PRICE_ID:QUANTITY.`,
		Example: `  cbcheckout url --site acme-test --item pro-USD-monthly:2 --coupon WELCOME10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.checkoutConfig()
			if len(items) > 0 {
				parsed, err := parseItems(items)
				if err != nil {
					return err
				}
				cfg.Items = parsed
			}
			if len(coupons) > 0 {
				cfg.CouponIDs = coupons
			}
			if layout != "" {
				cfg.Layout = checkout.Layout(layout)
			}

			u, err := checkout.BuildURL(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "item price to add, as ID or ID:QTY (repeatable)")
	cmd.Flags().StringArrayVar(&coupons, "coupon", nil, "coupon ID to apply (repeatable)")
	cmd.Flags().StringVar(&layout, "layout", "", "page layout: in_app or full_page")
	return cmd
}

func parseItems(specs []string) ([]checkout.Item, error) {
	items := make([]checkout.Item, 0, len(specs))
	for _, spec := range specs {
		id, qty, hasQty := strings.Cut(spec, ":")
		item := checkout.Item{ItemPriceID: id}
		if hasQty {
			n, err := strconv.Atoi(qty)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid quantity in --item %q", spec)
			}
			item.Quantity = n
		}
		items = append(items, item)
	}
	return items, nil
}

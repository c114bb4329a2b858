package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-drift/checkout/pkg/checkout"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	registerCommand(newBeaconCommand)
}

func newBeaconCommand(g *globals) *cobra.Command {
	var (
		timeout time.Duration
		baseURL string
	)
	cmd := &cobra.Command{
		Use:   "beacon",
		Short: "Send the diagnostic beacon for a site",
		Long: `Send the diagnostic request a cart issues when it is mounted and wait
for the response. Unlike the cart, which ignores the outcome, this command
fails on a transport error or a non-2xx status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site := g.checkoutConfig().Site
			if site == "" {
				return errors.New("no site configured: use --site, CHARGEBEE_SITE or checkout.yaml")
			}
			if timeout <= 0 {
				timeout = g.cfg.BeaconTimeout
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			b := &checkout.Beacon{
				Client:  &http.Client{},
				BaseURL: baseURL,
				Logger:  g.logger,
			}
			start := time.Now()
			if err := b.Send(ctx, site); err != nil {
				return err
			}
			g.logger.Debug("beacon sent", zap.String("site", site), zap.Duration("took", time.Since(start)))
			fmt.Fprintf(cmd.OutOrStdout(), "beacon sent for %s\n", site)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (default from config, 10s)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "send to this origin instead of https://{site}.chargebee.com")
	cmd.Flags().MarkHidden("base-url")
	return cmd
}

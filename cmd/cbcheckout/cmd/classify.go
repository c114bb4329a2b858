package cmd

import (
	"fmt"

	"github.com/go-drift/checkout/pkg/checkout"
	"github.com/spf13/cobra"
)

func init() {
	registerCommand(newClassifyCommand)
}

func newClassifyCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "classify URL...",
		Short: "Show how navigation URLs are interpreted",
		Long: `Classify each URL the way the checkout component does after a
navigation settles. Each line shows the outcome, its detail (hosted page ID
or step name) and the URL.`,
		Example: `  cbcheckout classify https://acme.chargebee.com/pages/v4/abc123/thank_you`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, u := range args {
				o := checkout.Classify(u)
				detail := "-"
				switch o.Kind {
				case checkout.OutcomeCompleted:
					detail = o.HostedPageID
					if detail == "" {
						detail = `""`
					}
				case checkout.OutcomeStep:
					detail = o.Step
				}
				fmt.Fprintf(out, "%-13s %-24s %s\n", o.Kind, detail, u)
			}
			return nil
		},
	}
}

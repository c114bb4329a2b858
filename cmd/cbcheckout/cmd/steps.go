package cmd

import (
	"fmt"

	"github.com/go-drift/checkout/pkg/checkout"
	"github.com/spf13/cobra"
)

func init() {
	registerCommand(newStepsCommand)
}

func newStepsCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the checkout step names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range checkout.Steps() {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

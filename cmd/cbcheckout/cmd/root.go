// Package cmd implements the cbcheckout CLI commands.
//
// Each command lives in its own file and registers itself from init with
// registerCommand. NewRootCommand assembles a fresh command tree so tests
// can run commands in isolation.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/checkout/cmd/cbcheckout/internal/config"
	"github.com/go-drift/checkout/pkg/checkout"
	"github.com/go-drift/checkout/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// globals holds the persistent flags and the state resolved from them
// before a command runs.
type globals struct {
	configPath string
	site       string
	verbose    bool

	cfg    *config.Resolved
	logger *zap.Logger
}

// checkoutConfig returns the resolved checkout config with the --site flag
// applied.
func (g *globals) checkoutConfig() checkout.Config {
	cfg := g.cfg.Checkout
	if g.site != "" {
		cfg.Site = g.site
	}
	return cfg
}

// commands registered with the CLI.
var commands []func(g *globals) *cobra.Command

func registerCommand(newCmd func(g *globals) *cobra.Command) {
	commands = append(commands, newCmd)
}

// NewRootCommand builds the cbcheckout command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "cbcheckout",
		Short: "Inspect Chargebee hosted checkout pages",
		Long: `cbcheckout works with the hosted checkout pages shown by the embedded
checkout component.

Settings are read from ./checkout.yaml when present, or from the file given
with --config. CHARGEBEE_SITE overrides the site from the file and --site
overrides both.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve()
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default ./checkout.yaml)")
	root.PersistentFlags().StringVar(&g.site, "site", "", "Chargebee site name")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log details to stderr")

	for _, newCmd := range commands {
		root.AddCommand(newCmd(g))
	}
	return root
}

func (g *globals) resolve() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(g.configPath, dir)
	if err != nil {
		return err
	}
	if g.site != "" {
		if err := checkout.ValidateSite(g.site); err != nil {
			return err
		}
	}
	g.cfg = cfg

	g.logger = zap.NewNop()
	if g.verbose {
		if g.logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		if cfg.Path != "" {
			g.logger.Debug("loaded config", zap.String("path", cfg.Path))
		}
	}
	errors.SetHandler(&errors.LogHandler{Logger: g.logger, Verbose: g.verbose})
	return nil
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

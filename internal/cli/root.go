package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Catalog string // catalog file; empty uses the bundled catalog
	Format  string // "text" | "json"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the filterfinder CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "filterfinder",
		Short: "Find replacement pool and spa filters",
		Long: `Match pool and spa filter constraints against the filter catalog.

Scores every catalog item, keeps the best matches, attaches seasonal
promotions and works out the flow rate your pump needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "catalog YAML file (default: bundled catalog)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log scoring and promo lookups")

	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

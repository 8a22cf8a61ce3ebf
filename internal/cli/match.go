package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/filtersfast/backend/internal/domain"
	"github.com/filtersfast/backend/internal/infrastructure/catalog"
	"github.com/filtersfast/backend/internal/infrastructure/promo"
	"github.com/filtersfast/backend/internal/usecase"
)

// matchOptions holds the raw flag values for the match command.
type matchOptions struct {
	environment string
	system      string
	brand       string
	series      string
	diameter    float64
	length      float64
	topStyle    string
	bottomStyle string
	poolVolume  float64
	turnover    float64
	tolerance   float64
	maxResults  int
	asOf        string
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank catalog filters against your constraints",
		Long: `Rank catalog filters against the constraints given as flags.

Only flags that are set count as constraints. Promo codes are checked
against the promo_codes section of the catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, opts, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.environment, "environment", "", "in-ground, above-ground or spa")
	f.StringVar(&opts.system, "system", "", "cartridge, sand or de")
	f.StringVar(&opts.brand, "brand", "", "equipment brand, e.g. Pentair")
	f.StringVar(&opts.series, "series", "", "product series, e.g. \"Clean & Clear Plus\"")
	f.Float64Var(&opts.diameter, "diameter", 0, "cartridge diameter in inches")
	f.Float64Var(&opts.length, "length", 0, "cartridge length in inches")
	f.StringVar(&opts.topStyle, "top-style", "", "top connector: open, closed, handle, threaded, flange or any")
	f.StringVar(&opts.bottomStyle, "bottom-style", "", "bottom connector: open, closed, handle, threaded, flange or any")
	f.Float64Var(&opts.poolVolume, "pool-volume", 0, "pool volume in gallons")
	f.Float64Var(&opts.turnover, "turnover", 0, "desired turnover time in hours")
	f.Float64Var(&opts.tolerance, "tolerance", usecase.DefaultTolerance, "dimension tolerance in inches")
	f.IntVar(&opts.maxResults, "max-results", usecase.DefaultMaxResults, "number of matches to show (1-5)")
	f.StringVar(&opts.asOf, "as-of", "", "judge promo codes at this RFC 3339 time (default: now)")

	return cmd
}

func runMatch(rootOpts *RootOptions, opts *matchOptions, cmd *cobra.Command) error {
	constraints, err := opts.constraints(cmd)
	if err != nil {
		return err
	}

	clock := time.Now
	if opts.asOf != "" {
		at, err := time.Parse(time.RFC3339, opts.asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		clock = func() time.Time { return at }
	}

	doc, err := catalog.LoadFile(rootOpts.Catalog)
	if err != nil {
		return err
	}

	service := usecase.NewWizardService(
		catalog.NewMemoryRepository(doc),
		promo.NewStaticRegistry(doc.PromoCodes),
		usecase.WizardServiceConfig{
			Tolerance:          opts.tolerance,
			MaxResults:         opts.maxResults,
			EnableDebugLogging: rootOpts.Verbose,
			Clock:              clock,
		},
	)

	result := service.Assemble(cmd.Context(), constraints)

	if rootOpts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeMatchReport(cmd.OutOrStdout(), result)
}

// constraints builds a ConstraintSet from the flags the user actually set
func (o *matchOptions) constraints(cmd *cobra.Command) (domain.ConstraintSet, error) {
	var c domain.ConstraintSet
	changed := cmd.Flags().Changed

	if changed("environment") {
		v, err := domain.ParseEnvironment(o.environment)
		if err != nil {
			return c, err
		}
		c.Environment = &v
	}
	if changed("system") {
		v, err := domain.ParseFilterSystem(o.system)
		if err != nil {
			return c, err
		}
		c.System = &v
	}
	if changed("top-style") {
		v, err := domain.ParseConnectorStyle(o.topStyle)
		if err != nil {
			return c, err
		}
		c.TopStyle = &v
	}
	if changed("bottom-style") {
		v, err := domain.ParseConnectorStyle(o.bottomStyle)
		if err != nil {
			return c, err
		}
		c.BottomStyle = &v
	}
	if changed("brand") {
		c.Brand = &o.brand
	}
	if changed("series") {
		c.Series = &o.series
	}
	if changed("diameter") {
		c.Diameter = &o.diameter
	}
	if changed("length") {
		c.Length = &o.length
	}
	if changed("pool-volume") {
		c.PoolVolume = &o.poolVolume
	}
	if changed("turnover") {
		c.DesiredTurnoverHours = &o.turnover
	}

	return usecase.PrepareConstraints(c)
}

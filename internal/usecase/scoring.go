package usecase

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/filtersfast/backend/internal/domain"
)

// Factor weights for scoring
const (
	weightEnvironment     = 25
	weightSystem          = 25
	weightBrand           = 20
	weightSeries          = 10
	weightDiameter        = 10
	weightLength          = 10
	weightTopConnector    = 5
	weightBottomConnector = 5
	weightVolumeInRange   = 10
)

// printer formats gallon counts with thousands separators
var printer = message.NewPrinter(language.English)

// scoringFactor is one row of the scoring table. match returns the reasoning
// line to record (empty for none) and whether the factor earns its weight.
type scoringFactor struct {
	name   string
	weight int
	match  func(e *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool)
}

// scoringFactors is evaluated top to bottom for every item; reasoning lines
// appear in this order.
var scoringFactors = []scoringFactor{
	{name: "environment", weight: weightEnvironment, match: matchEnvironment},
	{name: "system", weight: weightSystem, match: matchSystem},
	{name: "brand", weight: weightBrand, match: matchBrand},
	{name: "series", weight: weightSeries, match: matchSeries},
	{name: "diameter", weight: weightDiameter, match: matchDiameter},
	{name: "length", weight: weightLength, match: matchLength},
	{name: "top connector", weight: weightTopConnector, match: matchTopConnector},
	{name: "bottom connector", weight: weightBottomConnector, match: matchBottomConnector},
	{name: "pool volume", weight: weightVolumeInRange, match: matchPoolVolume},
}

// ScoringEngine scores a single catalog item against a constraint set
type ScoringEngine struct {
	tolerance float64
}

// NewScoringEngine creates a scoring engine. A negative tolerance falls back to DefaultTolerance.
func NewScoringEngine(tolerance float64) *ScoringEngine {
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}
	return &ScoringEngine{tolerance: tolerance}
}

// Score sums the weights of every satisfied factor and records why each one matched
func (e *ScoringEngine) Score(c *domain.ConstraintSet, item *domain.CatalogItem) domain.MatchResult {
	result := domain.MatchResult{
		ProductID: item.ID,
		Reasoning: []string{},
	}

	for _, f := range scoringFactors {
		line, ok := f.match(e, c, item)
		if ok {
			result.Score += f.weight
		}
		if line != "" {
			result.Reasoning = append(result.Reasoning, line)
		}
	}

	return result
}

func matchEnvironment(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	if c.Environment == nil || *c.Environment != item.Environment {
		return "", false
	}
	return fmt.Sprintf("Designed for %s installations.", item.Environment.Label()), true
}

func matchSystem(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	if c.System == nil || *c.System != item.System {
		return "", false
	}
	return fmt.Sprintf("Fits %s filtration systems.", item.System.Label()), true
}

func matchBrand(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	if c.Brand == nil || *c.Brand != item.Brand {
		return "", false
	}
	return fmt.Sprintf("Made for %s equipment.", item.Brand), true
}

func matchSeries(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	if c.Series == nil || item.Series == nil || *c.Series != *item.Series {
		return "", false
	}
	return fmt.Sprintf("Part of the %s series.", *item.Series), true
}

func matchDiameter(e *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	return e.matchDimension("Diameter", c.Diameter, item.Dimensions.DiameterIn)
}

func matchLength(e *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	return e.matchDimension("Length", c.Length, item.Dimensions.LengthIn)
}

// matchDimension scores a measurement within tolerance. An item that does not
// list the measurement is treated as a fit.
func (e *ScoringEngine) matchDimension(name string, want, have *float64) (string, bool) {
	if want == nil || !WithinTolerance(want, have, e.tolerance) {
		return "", false
	}
	if have == nil {
		return fmt.Sprintf("%s not listed; %s″ requested.", name, formatNumber(*want)), true
	}
	return fmt.Sprintf("%s within ±%s″ tolerance.", name, formatNumber(e.tolerance)), true
}

func matchTopConnector(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	return matchConnector("Top", c.TopStyle, item.Dimensions.TopStyle)
}

func matchBottomConnector(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	return matchConnector("Bottom", c.BottomStyle, item.Dimensions.BottomStyle)
}

// matchConnector scores a connector preference. An item that does not list
// its style is treated as compatible.
func matchConnector(end string, want, have *domain.ConnectorStyle) (string, bool) {
	if want == nil || *want == domain.ConnectorAny {
		return "", false
	}
	if have == nil {
		return fmt.Sprintf("%s connector style not listed; %s requested.", end, *want), true
	}
	if *have != *want {
		return "", false
	}
	return fmt.Sprintf("%s connector matches (%s).", end, *have), true
}

// matchPoolVolume scores a pool volume inside the recommended range. Outside
// the range it still explains the range without awarding points.
func matchPoolVolume(_ *ScoringEngine, c *domain.ConstraintSet, item *domain.CatalogItem) (string, bool) {
	if c.PoolVolume == nil {
		return "", false
	}
	if item.RecommendedVolume.Contains(*c.PoolVolume) {
		return fmt.Sprintf("Rated for your %s gallon pool.", formatGallons(*c.PoolVolume)), true
	}
	return fmt.Sprintf("Recommended for pools between %s and %s gallons.",
		formatGallons(item.RecommendedVolume.Min),
		formatGallons(item.RecommendedVolume.Max)), false
}

// formatGallons renders a volume rounded to whole gallons with thousands separators
func formatGallons(gallons float64) string {
	return printer.Sprintf("%d", int64(math.Round(gallons)))
}

// formatNumber renders a float without trailing zeros
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

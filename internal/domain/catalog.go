package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Environment is the kind of body of water a filter serves
type Environment string

const (
	EnvironmentInGround    Environment = "in-ground"
	EnvironmentAboveGround Environment = "above-ground"
	EnvironmentSpa         Environment = "spa"
)

var environmentLabels = map[Environment]string{
	EnvironmentInGround:    "in-ground pool",
	EnvironmentAboveGround: "above-ground pool",
	EnvironmentSpa:         "spa",
}

// ParseEnvironment converts a string into an Environment, rejecting unknown values
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := environmentLabels[e]; !ok {
		return "", fmt.Errorf("%w: environment %q", ErrInvalidValue, s)
	}
	return e, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON and YAML decoding
func (e *Environment) UnmarshalText(text []byte) error {
	v, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Label returns the human-readable name used in reasoning lines
func (e Environment) Label() string {
	return environmentLabels[e]
}

// FilterSystem is the filtration technology a filter belongs to
type FilterSystem string

const (
	SystemCartridge FilterSystem = "cartridge"
	SystemSand      FilterSystem = "sand"
	SystemDE        FilterSystem = "de"
)

var systemLabels = map[FilterSystem]string{
	SystemCartridge: "cartridge",
	SystemSand:      "sand",
	SystemDE:        "diatomaceous earth (DE)",
}

// ParseFilterSystem converts a string into a FilterSystem, rejecting unknown values
func ParseFilterSystem(s string) (FilterSystem, error) {
	v := FilterSystem(strings.ToLower(strings.TrimSpace(s)))
	if v == "diatomaceous-earth" {
		v = SystemDE
	}
	if _, ok := systemLabels[v]; !ok {
		return "", fmt.Errorf("%w: system %q", ErrInvalidValue, s)
	}
	return v, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON and YAML decoding
func (f *FilterSystem) UnmarshalText(text []byte) error {
	v, err := ParseFilterSystem(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Label returns the human-readable name used in reasoning lines
func (f FilterSystem) Label() string {
	return systemLabels[f]
}

// ConnectorStyle describes the end cap of a cartridge
type ConnectorStyle string

const (
	ConnectorOpen     ConnectorStyle = "open"
	ConnectorClosed   ConnectorStyle = "closed"
	ConnectorHandle   ConnectorStyle = "handle"
	ConnectorThreaded ConnectorStyle = "threaded"
	ConnectorFlange   ConnectorStyle = "flange"

	// ConnectorAny is only meaningful in a ConstraintSet: the shopper does not care
	ConnectorAny ConnectorStyle = "any"
)

var connectorStyles = []ConnectorStyle{
	ConnectorOpen, ConnectorClosed, ConnectorHandle, ConnectorThreaded, ConnectorFlange, ConnectorAny,
}

// ParseConnectorStyle converts a string into a ConnectorStyle, rejecting unknown values
func ParseConnectorStyle(s string) (ConnectorStyle, error) {
	v := ConnectorStyle(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(connectorStyles, v) {
		return "", fmt.Errorf("%w: connector style %q", ErrInvalidValue, s)
	}
	return v, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON and YAML decoding
func (c *ConnectorStyle) UnmarshalText(text []byte) error {
	v, err := ParseConnectorStyle(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Dimensions holds the physical measurements of a filter
type Dimensions struct {
	DiameterIn     *float64        `json:"diameterIn,omitempty" yaml:"diameter_in,omitempty"`
	LengthIn       *float64        `json:"lengthIn,omitempty" yaml:"length_in,omitempty"`
	TopStyle       *ConnectorStyle `json:"topStyle,omitempty" yaml:"top_style,omitempty"`
	BottomStyle    *ConnectorStyle `json:"bottomStyle,omitempty" yaml:"bottom_style,omitempty"`
	ConnectorNotes string          `json:"connectorNotes,omitempty" yaml:"connector_notes,omitempty"`
}

// VolumeRange is the pool size, in gallons, a filter is rated for
type VolumeRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether gallons falls inside the range, bounds inclusive
func (r VolumeRange) Contains(gallons float64) bool {
	return gallons >= r.Min && gallons <= r.Max
}

// CompatibilityEntry names an OEM part this filter replaces
type CompatibilityEntry struct {
	Brand string `json:"brand" yaml:"brand"`
	SKU   string `json:"sku" yaml:"sku"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CatalogItem is one product in the filter catalog
type CatalogItem struct {
	ID                string               `json:"id" yaml:"id"`
	Name              string               `json:"name" yaml:"name"`
	Environment       Environment          `json:"environment" yaml:"environment"`
	System            FilterSystem         `json:"system" yaml:"system"`
	Brand             string               `json:"brand" yaml:"brand"`
	Series            *string              `json:"series,omitempty" yaml:"series,omitempty"`
	Dimensions        Dimensions           `json:"dimensions" yaml:"dimensions"`
	FlowRateGPM       float64              `json:"flowRateGpm" yaml:"flow_rate_gpm"`
	SurfaceAreaSqFt   *float64             `json:"surfaceAreaSqFt,omitempty" yaml:"surface_area_sq_ft,omitempty"`
	RecommendedVolume VolumeRange          `json:"recommendedVolume" yaml:"recommended_volume"`
	Compatibility     []CompatibilityEntry `json:"compatibility" yaml:"compatibility"`
	PromoTags         []string             `json:"promoTags" yaml:"promo_tags"`
	MaintenanceTips   []string             `json:"maintenanceTips" yaml:"maintenance_tips"`
	Features          []string             `json:"features" yaml:"features"`
	Price             float64              `json:"price" yaml:"price"`
	OriginalPrice     *float64             `json:"originalPrice,omitempty" yaml:"original_price,omitempty"`
	Badges            []string             `json:"badges,omitempty" yaml:"badges,omitempty"`
	ProductURL        string               `json:"productUrl" yaml:"product_url"`
}

// HasPromoTag reports whether the item carries the given promotional tag
func (c *CatalogItem) HasPromoTag(tag string) bool {
	return slices.Contains(c.PromoTags, tag)
}

// Clone returns a deep copy so callers cannot reach the repository's backing data
func (c CatalogItem) Clone() CatalogItem {
	out := c
	out.Series = clonePtr(c.Series)
	out.Dimensions.DiameterIn = clonePtr(c.Dimensions.DiameterIn)
	out.Dimensions.LengthIn = clonePtr(c.Dimensions.LengthIn)
	out.Dimensions.TopStyle = clonePtr(c.Dimensions.TopStyle)
	out.Dimensions.BottomStyle = clonePtr(c.Dimensions.BottomStyle)
	out.SurfaceAreaSqFt = clonePtr(c.SurfaceAreaSqFt)
	out.OriginalPrice = clonePtr(c.OriginalPrice)
	out.Compatibility = slices.Clone(c.Compatibility)
	out.PromoTags = slices.Clone(c.PromoTags)
	out.MaintenanceTips = slices.Clone(c.MaintenanceTips)
	out.Features = slices.Clone(c.Features)
	out.Badges = slices.Clone(c.Badges)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtersfast/backend/internal/domain"
)

const minimalCatalog = `
products:
  - id: p1
    name: Test Cartridge
    environment: in-ground
    system: cartridge
    brand: "Pentair"
    series: "Clean & Clear"
    dimensions:
      diameter_in: 5.0
      top_style: open
    flow_rate_gpm: 50
    recommended_volume: {min: 15000, max: 25000}
    promo_tags: [spring-opening]
    product_url: /products/p1
promotions:
  - tag: spring-opening
    title: Spring
    months: March to May
    description: Spring sale
    recommended_promo_codes: [SPRING15]
promo_codes:
  - code: SPRING15
    discount_percent: 15
    active: true
    expires_at: 2026-06-01T00:00:00Z
`

func TestLoad_Minimal(t *testing.T) {
	doc, err := Load(strings.NewReader(minimalCatalog))
	require.NoError(t, err)

	require.Len(t, doc.Products, 1)
	p := doc.Products[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, domain.EnvironmentInGround, p.Environment)
	assert.Equal(t, domain.SystemCartridge, p.System)
	require.NotNil(t, p.Series)
	assert.Equal(t, "Clean & Clear", *p.Series)
	require.NotNil(t, p.Dimensions.DiameterIn)
	assert.Equal(t, 5.0, *p.Dimensions.DiameterIn)
	assert.Nil(t, p.Dimensions.LengthIn)
	require.NotNil(t, p.Dimensions.TopStyle)
	assert.Equal(t, domain.ConnectorOpen, *p.Dimensions.TopStyle)
	assert.Equal(t, domain.VolumeRange{Min: 15000, Max: 25000}, p.RecommendedVolume)

	require.Len(t, doc.Promotions, 1)
	assert.Equal(t, []string{"SPRING15"}, doc.Promotions[0].RecommendedPromoCodes)

	require.Len(t, doc.PromoCodes, 1)
	require.NotNil(t, doc.PromoCodes[0].ExpiresAt)
	assert.Equal(t, 2026, doc.PromoCodes[0].ExpiresAt.Year())
}

func TestLoad_NormalizesBrandToNFC(t *testing.T) {
	decomposed := strings.Replace(minimalCatalog, `brand: "Pentair"`, "brand: \"Pentai\u0301r\"", 1)

	doc, err := Load(strings.NewReader(decomposed))
	require.NoError(t, err)
	assert.Equal(t, "Penta\u00edr", doc.Products[0].Brand)
}

func TestLoad_Empty(t *testing.T) {
	doc, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Products)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		errMsg  string
	}{
		{
			name:    "unknown environment",
			replace: [2]string{"environment: in-ground", "environment: lake"},
			errMsg:  "environment",
		},
		{
			name:    "unknown system",
			replace: [2]string{"system: cartridge", "system: magic"},
			errMsg:  "system",
		},
		{
			name:    "any connector on an item",
			replace: [2]string{"top_style: open", "top_style: any"},
			errMsg:  "only valid in constraints",
		},
		{
			name:    "inverted volume range",
			replace: [2]string{"{min: 15000, max: 25000}", "{min: 25000, max: 15000}"},
			errMsg:  "not a valid range",
		},
		{
			name:    "negative diameter",
			replace: [2]string{"diameter_in: 5.0", "diameter_in: -5.0"},
			errMsg:  "diameter must be positive",
		},
		{
			name:    "missing brand",
			replace: [2]string{`brand: "Pentair"`, `brand: ""`},
			errMsg:  "brand is required",
		},
		{
			name:    "unknown field",
			replace: [2]string{"flow_rate_gpm: 50", "flow_rate_gpm: 50\n    colour: blue"},
			errMsg:  "colour",
		},
		{
			name:    "empty promotion tag",
			replace: [2]string{"  - tag: spring-opening", "  - tag: \"\""},
			errMsg:  "has no tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(minimalCatalog, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, minimalCatalog, src, "replacement did not apply")

			_, err := Load(strings.NewReader(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_DuplicateIDs(t *testing.T) {
	src := `
products:
  - {id: a, environment: spa, system: cartridge, brand: X, recommended_volume: {min: 1, max: 2}}
  - {id: a, environment: spa, system: cartridge, brand: Y, recommended_volume: {min: 1, max: 2}}
`
	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "duplicate product id")
}

func TestLoad_DuplicatePromoCodes(t *testing.T) {
	tests := []struct {
		name  string
		codes string
	}{
		{name: "identical", codes: "[{code: SPA5, active: true}, {code: SPA5, active: false}]"},
		{name: "differ only in case", codes: "[{code: SPRING15, active: true}, {code: spring15, active: false}]"},
		{name: "differ only in spacing", codes: `[{code: SPA5, active: true}, {code: " SPA5 ", active: false}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader("promo_codes: " + tt.codes))
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), "duplicate promo code")
		})
	}
}

func TestLoad_NormalizesPromoCodes(t *testing.T) {
	doc, err := Load(strings.NewReader(`promo_codes: [{code: " spa5 ", active: true}]`))
	require.NoError(t, err)
	require.Len(t, doc.PromoCodes, 1)
	assert.Equal(t, "SPA5", doc.PromoCodes[0].Code)
}

func TestLoad_TrimsBrandAndSeries(t *testing.T) {
	padded := strings.Replace(minimalCatalog, `brand: "Pentair"`, `brand: "Pentair "`, 1)
	padded = strings.Replace(padded, `series: "Clean & Clear"`, `series: " Clean & Clear "`, 1)

	doc, err := Load(strings.NewReader(padded))
	require.NoError(t, err)
	assert.Equal(t, "Pentair", doc.Products[0].Brand)
	require.NotNil(t, doc.Products[0].Series)
	assert.Equal(t, "Clean & Clear", *doc.Products[0].Series)

	t.Run("blank series is dropped", func(t *testing.T) {
		blank := strings.Replace(minimalCatalog, `series: "Clean & Clear"`, `series: "  "`, 1)
		doc, err := Load(strings.NewReader(blank))
		require.NoError(t, err)
		assert.Nil(t, doc.Products[0].Series)
	})

	t.Run("blank brand is rejected", func(t *testing.T) {
		blank := strings.Replace(minimalCatalog, `brand: "Pentair"`, `brand: "   "`, 1)
		_, err := Load(strings.NewReader(blank))
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		assert.Contains(t, err.Error(), "brand is required")
	})
}

func TestLoadDefault(t *testing.T) {
	doc, err := LoadDefault()
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Products)
	assert.NotEmpty(t, doc.Promotions)
	assert.NotEmpty(t, doc.PromoCodes)

	for _, p := range doc.Products {
		assert.LessOrEqual(t, p.RecommendedVolume.Min, p.RecommendedVolume.Max, p.ID)
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path loads the bundled catalog", func(t *testing.T) {
		doc, err := LoadFile("")
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Products)
	})

	t.Run("reads file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o644))

		doc, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, doc.Products, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open catalog")
	})
}

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/filtersfast/backend/internal/domain"
	"github.com/filtersfast/backend/internal/infrastructure/promo"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Document is the on-disk layout of a catalog file
type Document struct {
	Products   []domain.CatalogItem       `yaml:"products"`
	Promotions []domain.SeasonalPromotion `yaml:"promotions"`
	PromoCodes []domain.PromoCode         `yaml:"promo_codes"`
}

// LoadDefault loads the catalog bundled with the binary
func LoadDefault() (*Document, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile loads a catalog from path. An empty path loads the bundled catalog.
func LoadFile(path string) (*Document, error) {
	if path == "" {
		return LoadDefault()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a catalog document. Unknown keys and
// unrecognized enumerated values are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	normalize(&doc)

	if err := validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// normalize puts every string the matcher compares into trimmed NFC form
// and promo codes into their lookup form
func normalize(doc *Document) {
	for i := range doc.Products {
		p := &doc.Products[i]
		p.Brand = normalizeText(p.Brand)
		if p.Series != nil {
			if s := normalizeText(*p.Series); s != "" {
				p.Series = &s
			} else {
				p.Series = nil
			}
		}
		for j, tag := range p.PromoTags {
			p.PromoTags[j] = normalizeText(tag)
		}
	}
	for i := range doc.Promotions {
		doc.Promotions[i].Tag = normalizeText(doc.Promotions[i].Tag)
	}
	for i := range doc.PromoCodes {
		doc.PromoCodes[i].Code = promo.NormalizeCode(doc.PromoCodes[i].Code)
	}
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// validate enforces the catalog invariants the matching engine relies on
func validate(doc *Document) error {
	seen := make(map[string]bool, len(doc.Products))
	for i := range doc.Products {
		p := &doc.Products[i]
		if p.ID == "" {
			return fmt.Errorf("%w: product %d has no id", domain.ErrInvalidCatalog, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true

		if err := validateProduct(p); err != nil {
			return fmt.Errorf("%w: product %q: %v", domain.ErrInvalidCatalog, p.ID, err)
		}
	}

	for i, entry := range doc.Promotions {
		if entry.Tag == "" {
			return fmt.Errorf("%w: promotion %d has no tag", domain.ErrInvalidCatalog, i)
		}
	}

	codes := make(map[string]bool, len(doc.PromoCodes))
	for i, code := range doc.PromoCodes {
		if code.Code == "" {
			return fmt.Errorf("%w: promo code %d is empty", domain.ErrInvalidCatalog, i)
		}
		if codes[code.Code] {
			return fmt.Errorf("%w: duplicate promo code %q", domain.ErrInvalidCatalog, code.Code)
		}
		codes[code.Code] = true
	}

	return nil
}

func validateProduct(p *domain.CatalogItem) error {
	if p.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if p.System == "" {
		return fmt.Errorf("system is required")
	}
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if p.RecommendedVolume.Min < 0 || p.RecommendedVolume.Min > p.RecommendedVolume.Max {
		return fmt.Errorf("recommended volume %v-%v is not a valid range",
			p.RecommendedVolume.Min, p.RecommendedVolume.Max)
	}
	if p.FlowRateGPM < 0 {
		return fmt.Errorf("flow rate must not be negative")
	}

	d := p.Dimensions
	if d.DiameterIn != nil && *d.DiameterIn <= 0 {
		return fmt.Errorf("diameter must be positive")
	}
	if d.LengthIn != nil && *d.LengthIn <= 0 {
		return fmt.Errorf("length must be positive")
	}
	if d.TopStyle != nil && *d.TopStyle == domain.ConnectorAny {
		return fmt.Errorf("top style %q is only valid in constraints", domain.ConnectorAny)
	}
	if d.BottomStyle != nil && *d.BottomStyle == domain.ConnectorAny {
		return fmt.Errorf("bottom style %q is only valid in constraints", domain.ConnectorAny)
	}

	return nil
}

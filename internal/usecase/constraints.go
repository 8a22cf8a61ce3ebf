package usecase

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/filtersfast/backend/internal/domain"
)

// PrepareConstraints validates a constraint set at the request boundary and
// returns a normalized copy. Blank strings become unset; text is trimmed and
// NFC normalized so it compares equal to catalog values. Non-finite or
// negative numbers, and a zero pool volume or turnover, are rejected with
// domain.ErrInvalidRequest.
func PrepareConstraints(c domain.ConstraintSet) (domain.ConstraintSet, error) {
	out := domain.ConstraintSet{
		Environment: c.Environment,
		System:      c.System,
		TopStyle:    c.TopStyle,
		BottomStyle: c.BottomStyle,
		Brand:       NormalizeText(c.Brand),
		Series:      NormalizeText(c.Series),
	}

	numbers := []struct {
		name     string
		in       *float64
		out      **float64
		positive bool
	}{
		{"diameter", c.Diameter, &out.Diameter, false},
		{"length", c.Length, &out.Length, false},
		{"poolVolume", c.PoolVolume, &out.PoolVolume, true},
		{"desiredTurnoverHours", c.DesiredTurnoverHours, &out.DesiredTurnoverHours, true},
	}
	for _, n := range numbers {
		if n.in == nil {
			continue
		}
		v := *n.in
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.ConstraintSet{}, fmt.Errorf("%w: %s must be a finite number", domain.ErrInvalidRequest, n.name)
		}
		if v < 0 {
			return domain.ConstraintSet{}, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidRequest, n.name)
		}
		if n.positive && v == 0 {
			return domain.ConstraintSet{}, fmt.Errorf("%w: %s must be greater than zero", domain.ErrInvalidRequest, n.name)
		}
		*n.out = &v
	}

	return out, nil
}

// NormalizeText trims and NFC-normalizes s, returning nil for blank input
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}

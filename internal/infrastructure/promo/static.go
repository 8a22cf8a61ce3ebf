package promo

import (
	"context"

	"github.com/filtersfast/backend/internal/domain"
)

// StaticRegistry serves promo codes from a fixed list, typically the
// promo_codes section of the catalog file
type StaticRegistry struct {
	codes map[string]domain.PromoCode
}

// NewStaticRegistry creates a registry from codes. Later duplicates win.
func NewStaticRegistry(codes []domain.PromoCode) *StaticRegistry {
	r := &StaticRegistry{codes: make(map[string]domain.PromoCode, len(codes))}
	for _, code := range codes {
		code.Code = NormalizeCode(code.Code)
		r.codes[code.Code] = code
	}
	return r
}

// Lookup implements domain.PromoCodeRegistry
func (r *StaticRegistry) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	promo, ok := r.codes[NormalizeCode(code)]
	if !ok {
		return nil, domain.ErrPromoCodeNotFound
	}
	return &promo, nil
}

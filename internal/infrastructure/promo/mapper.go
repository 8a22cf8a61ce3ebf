package promo

import (
	"strings"
	"time"

	"github.com/filtersfast/backend/internal/domain"
)

// Registry status values
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusExpired  = "expired"
)

// codePayload is the registry's JSON representation of a promo code
type codePayload struct {
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	DiscountPercent float64    `json:"discount_percent"`
	Status          string     `json:"status"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// mapToPromoCode converts a registry payload to our domain PromoCode
func mapToPromoCode(p *codePayload) *domain.PromoCode {
	return &domain.PromoCode{
		Code:            NormalizeCode(p.Code),
		Description:     p.Description,
		DiscountPercent: p.DiscountPercent,
		Active:          strings.EqualFold(p.Status, StatusActive),
		StartsAt:        p.StartsAt,
		ExpiresAt:       p.ExpiresAt,
	}
}

// NormalizeCode canonicalizes a code for lookup: trimmed and upper-cased
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

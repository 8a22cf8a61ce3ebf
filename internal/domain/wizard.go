package domain

import "time"

// ConstraintSet is what the shopper has told the filter finder so far.
// Every field is optional; nil means "not yet specified".
type ConstraintSet struct {
	Environment          *Environment    `json:"environment,omitempty"`
	System               *FilterSystem   `json:"system,omitempty"`
	Brand                *string         `json:"brand,omitempty"`
	Series               *string         `json:"series,omitempty"`
	Diameter             *float64        `json:"diameter,omitempty"`
	Length               *float64        `json:"length,omitempty"`
	TopStyle             *ConnectorStyle `json:"topStyle,omitempty"`
	BottomStyle          *ConnectorStyle `json:"bottomStyle,omitempty"`
	PoolVolume           *float64        `json:"poolVolume,omitempty"`
	DesiredTurnoverHours *float64        `json:"desiredTurnoverHours,omitempty"`
}

// MatchResult is the score and explanation for one catalog item
type MatchResult struct {
	ProductID string   `json:"productId"`
	Score     int      `json:"score"`
	Reasoning []string `json:"reasoning"`
}

// RankedMatch is a MatchResult joined back to its catalog item
type RankedMatch struct {
	MatchResult
	Item       CatalogItem             `json:"item"`
	Promotions []SeasonalPromotionView `json:"promotions"`
}

// WizardResult is the full answer returned for one ConstraintSet
type WizardResult struct {
	Constraints         ConstraintSet `json:"constraints"`
	Matches             []RankedMatch `json:"matches"`
	CalculatedFlowRate  *float64      `json:"calculatedFlowRate,omitempty"`
	MaintenanceReminder *string       `json:"maintenanceReminder,omitempty"`
}

// SeasonalPromotion is a calendar entry that applies to items carrying Tag
type SeasonalPromotion struct {
	Tag                   string   `json:"tag" yaml:"tag"`
	Title                 string   `json:"title" yaml:"title"`
	Months                string   `json:"months" yaml:"months"`
	Description           string   `json:"description" yaml:"description"`
	RecommendedPromoCodes []string `json:"recommendedPromoCodes" yaml:"recommended_promo_codes"`
}

// SeasonalPromotionView is a promotion as shown next to a match, with only
// the promo codes that are currently redeemable
type SeasonalPromotionView struct {
	Tag         string      `json:"tag"`
	Title       string      `json:"title"`
	Months      string      `json:"months"`
	Description string      `json:"description"`
	PromoCodes  []PromoCode `json:"promoCodes"`
}

// PromoCode is an entry in the promo-code registry
type PromoCode struct {
	Code            string     `json:"code" yaml:"code"`
	Description     string     `json:"description" yaml:"description"`
	DiscountPercent float64    `json:"discountPercent" yaml:"discount_percent"`
	Active          bool       `json:"active" yaml:"active"`
	StartsAt        *time.Time `json:"startsAt,omitempty" yaml:"starts_at,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`
}

// IsActive reports whether the code can be redeemed at the given instant
func (p *PromoCode) IsActive(at time.Time) bool {
	if p == nil || !p.Active {
		return false
	}
	if p.StartsAt != nil && at.Before(*p.StartsAt) {
		return false
	}
	if p.ExpiresAt != nil && !at.Before(*p.ExpiresAt) {
		return false
	}
	return true
}

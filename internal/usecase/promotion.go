package usecase

import (
	"context"
	"log"
	"time"

	"github.com/filtersfast/backend/internal/domain"
)

// PromotionOverlay attaches seasonal promotions, and their redeemable codes,
// to a catalog item
type PromotionOverlay struct {
	calendar []domain.SeasonalPromotion
	registry domain.PromoCodeRegistry
	asOf     time.Time
	debug    bool
}

// NewPromotionOverlay creates an overlay that judges code activity at asOf.
// A nil registry yields promotions with no codes.
func NewPromotionOverlay(calendar []domain.SeasonalPromotion, registry domain.PromoCodeRegistry, asOf time.Time) *PromotionOverlay {
	return &PromotionOverlay{
		calendar: calendar,
		registry: registry,
		asOf:     asOf,
	}
}

// SetDebug toggles lookup logging
func (o *PromotionOverlay) SetDebug(debug bool) {
	o.debug = debug
}

// Overlay returns a view for every calendar promotion whose tag the item
// carries, in calendar order. Codes that cannot be found, fail to load or are
// not active are left out.
func (o *PromotionOverlay) Overlay(ctx context.Context, item *domain.CatalogItem) []domain.SeasonalPromotionView {
	views := []domain.SeasonalPromotionView{}
	if item == nil || len(item.PromoTags) == 0 {
		return views
	}

	for _, promo := range o.calendar {
		if !item.HasPromoTag(promo.Tag) {
			continue
		}
		views = append(views, domain.SeasonalPromotionView{
			Tag:         promo.Tag,
			Title:       promo.Title,
			Months:      promo.Months,
			Description: promo.Description,
			PromoCodes:  o.activeCodes(ctx, promo.RecommendedPromoCodes),
		})
	}

	return views
}

func (o *PromotionOverlay) activeCodes(ctx context.Context, codes []string) []domain.PromoCode {
	active := []domain.PromoCode{}
	if o.registry == nil {
		return active
	}

	for _, code := range codes {
		promo, err := o.registry.Lookup(ctx, code)
		if err != nil {
			if o.debug {
				log.Printf("[PROMO] Dropping %q: %v", code, err)
			}
			continue
		}
		if !promo.IsActive(o.asOf) {
			if o.debug {
				log.Printf("[PROMO] Dropping %q: not active", code)
			}
			continue
		}
		active = append(active, *promo)
	}

	return active
}

// registrySnapshot memoizes lookups so that one wizard invocation sees a
// single answer per code. Not safe for concurrent use; create one per call.
type registrySnapshot struct {
	registry domain.PromoCodeRegistry
	entries  map[string]snapshotEntry
}

type snapshotEntry struct {
	code *domain.PromoCode
	err  error
}

func newRegistrySnapshot(registry domain.PromoCodeRegistry) domain.PromoCodeRegistry {
	if registry == nil {
		return nil
	}
	return &registrySnapshot{
		registry: registry,
		entries:  make(map[string]snapshotEntry),
	}
}

// Lookup implements domain.PromoCodeRegistry
func (s *registrySnapshot) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	if entry, ok := s.entries[code]; ok {
		return entry.code, entry.err
	}
	promo, err := s.registry.Lookup(ctx, code)
	if err == nil && promo == nil {
		err = domain.ErrPromoCodeNotFound
	}
	s.entries[code] = snapshotEntry{code: promo, err: err}
	return promo, err
}

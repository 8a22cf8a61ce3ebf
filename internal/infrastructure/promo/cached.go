package promo

import (
	"context"
	"errors"
	"time"

	"github.com/filtersfast/backend/internal/domain"
)

// DefaultCacheTTL is how long lookups are remembered when no TTL is configured
const DefaultCacheTTL = 5 * time.Minute

// cachedLookup is what CachedRegistry stores; a nil code records "not found"
type cachedLookup struct {
	code *domain.PromoCode
}

// CachedRegistry remembers lookups from another registry for a fixed TTL.
// Not-found answers are cached too; transient failures are not.
type CachedRegistry struct {
	next  domain.PromoCodeRegistry
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewCachedRegistry wraps next with cache
func NewCachedRegistry(next domain.PromoCodeRegistry, cache domain.CacheRepository, ttl time.Duration) *CachedRegistry {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedRegistry{next: next, cache: cache, ttl: ttl}
}

// Lookup implements domain.PromoCodeRegistry
func (r *CachedRegistry) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	key := cacheKey(code)

	if value, err := r.cache.Get(ctx, key); err == nil {
		if entry, ok := value.(cachedLookup); ok {
			if entry.code == nil {
				return nil, domain.ErrPromoCodeNotFound
			}
			promo := *entry.code
			return &promo, nil
		}
	}

	promo, err := r.next.Lookup(ctx, code)
	switch {
	case err == nil && promo != nil:
		stored := *promo
		_ = r.cache.Set(ctx, key, cachedLookup{code: &stored}, r.ttl)
	case errors.Is(err, domain.ErrPromoCodeNotFound):
		_ = r.cache.Set(ctx, key, cachedLookup{}, r.ttl)
	}

	return promo, err
}

// cacheKey builds the cache key for a code. Format: "promo:{CODE}"
func cacheKey(code string) string {
	return "promo:" + NormalizeCode(code)
}

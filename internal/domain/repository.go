package domain

import (
	"context"
	"time"
)

// CatalogRepository is a read-only view over the product catalog and the
// seasonal promotion calendar. Implementations must return data the caller
// cannot use to mutate the repository.
type CatalogRepository interface {
	Products() []CatalogItem
	ProductByID(id string) (*CatalogItem, error)
	Promotions() []SeasonalPromotion
}

// PromoCodeRegistry looks up promotional codes by their code string
type PromoCodeRegistry interface {
	Lookup(ctx context.Context, code string) (*PromoCode, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

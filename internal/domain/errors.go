package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when constraint values fail boundary validation
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidValue is returned when an enumerated value is not recognized
	ErrInvalidValue = errors.New("invalid enumerated value")

	// ErrInvalidCatalog is returned when the catalog source fails validation
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrPromoCodeNotFound is returned when the registry has no such code
	ErrPromoCodeNotFound = errors.New("promo code not found")

	// ErrRegistryFailure is returned when the promo-code registry cannot be reached
	ErrRegistryFailure = errors.New("promo code registry request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

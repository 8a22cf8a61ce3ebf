package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filtersfast/backend/internal/domain"
)

const lookupQuery = `SELECT code, description, discount_percent, active, starts_at, expires_at FROM promo_codes WHERE code = $1`

// SQLRegistry reads promo codes from the storefront's promo_codes table.
// It never writes.
type SQLRegistry struct {
	db *sql.DB
}

// NewSQLRegistry wraps an open database handle
func NewSQLRegistry(db *sql.DB) *SQLRegistry {
	return &SQLRegistry{db: db}
}

// OpenSQLRegistry opens and pings a database with the given driver and DSN.
// The driver must already be registered by the caller.
func OpenSQLRegistry(ctx context.Context, driver, dsn string) (*SQLRegistry, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLRegistry{db: db}, nil
}

// Close closes the underlying database handle
func (r *SQLRegistry) Close() error {
	return r.db.Close()
}

// Lookup implements domain.PromoCodeRegistry
func (r *SQLRegistry) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	var (
		promo     domain.PromoCode
		startsAt  sql.NullTime
		expiresAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, lookupQuery, NormalizeCode(code)).Scan(
		&promo.Code,
		&promo.Description,
		&promo.DiscountPercent,
		&promo.Active,
		&startsAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPromoCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryFailure, err)
	}

	if startsAt.Valid {
		promo.StartsAt = &startsAt.Time
	}
	if expiresAt.Valid {
		promo.ExpiresAt = &expiresAt.Time
	}

	return &promo, nil
}

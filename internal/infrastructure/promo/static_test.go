package promo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filtersfast/backend/internal/domain"
)

func TestStaticRegistry_Lookup(t *testing.T) {
	registry := NewStaticRegistry([]domain.PromoCode{
		{Code: "spring15", DiscountPercent: 15, Active: true},
		{Code: "SPA5", DiscountPercent: 5, Active: true},
	})
	ctx := context.Background()

	t.Run("finds code case-insensitively", func(t *testing.T) {
		got, err := registry.Lookup(ctx, "Spring15")
		require.NoError(t, err)
		assert.Equal(t, "SPRING15", got.Code)
		assert.Equal(t, 15.0, got.DiscountPercent)
	})

	t.Run("unknown code", func(t *testing.T) {
		got, err := registry.Lookup(ctx, "NOPE")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrPromoCodeNotFound)
	})

	t.Run("returned code is a copy", func(t *testing.T) {
		got, err := registry.Lookup(ctx, "SPA5")
		require.NoError(t, err)
		got.Active = false

		again, err := registry.Lookup(ctx, "SPA5")
		require.NoError(t, err)
		assert.True(t, again.Active)
	})
}

package catalog

import (
	"slices"

	"github.com/filtersfast/backend/internal/domain"
)

// MemoryRepository is an immutable in-memory catalog. Every accessor hands
// out copies, so it is safe for concurrent readers.
type MemoryRepository struct {
	products   []domain.CatalogItem
	promotions []domain.SeasonalPromotion
	byID       map[string]int
}

// NewMemoryRepository creates a repository from a loaded document
func NewMemoryRepository(doc *Document) *MemoryRepository {
	repo := &MemoryRepository{
		byID: make(map[string]int, len(doc.Products)),
	}

	repo.products = make([]domain.CatalogItem, len(doc.Products))
	for i, p := range doc.Products {
		repo.products[i] = p.Clone()
		repo.byID[p.ID] = i
	}

	repo.promotions = make([]domain.SeasonalPromotion, len(doc.Promotions))
	for i, promo := range doc.Promotions {
		promo.RecommendedPromoCodes = slices.Clone(promo.RecommendedPromoCodes)
		repo.promotions[i] = promo
	}

	return repo
}

// Products implements domain.CatalogRepository
func (r *MemoryRepository) Products() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out
}

// ProductByID implements domain.CatalogRepository
func (r *MemoryRepository) ProductByID(id string) (*domain.CatalogItem, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	item := r.products[i].Clone()
	return &item, nil
}

// Promotions implements domain.CatalogRepository
func (r *MemoryRepository) Promotions() []domain.SeasonalPromotion {
	out := make([]domain.SeasonalPromotion, len(r.promotions))
	for i, promo := range r.promotions {
		promo.RecommendedPromoCodes = slices.Clone(promo.RecommendedPromoCodes)
		out[i] = promo
	}
	return out
}

// Len returns the number of products in the catalog
func (r *MemoryRepository) Len() int {
	return len(r.products)
}

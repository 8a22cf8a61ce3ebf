package usecase

import (
	"context"

	"github.com/filtersfast/backend/internal/domain"
)

// MockPromoRegistry is a mock implementation of domain.PromoCodeRegistry
type MockPromoRegistry struct {
	codes map[string]*domain.PromoCode
	errs  map[string]error
	Calls map[string]int
}

func NewMockPromoRegistry(codes ...domain.PromoCode) *MockPromoRegistry {
	m := &MockPromoRegistry{
		codes: make(map[string]*domain.PromoCode),
		errs:  make(map[string]error),
		Calls: make(map[string]int),
	}
	for _, c := range codes {
		c := c
		m.codes[c.Code] = &c
	}
	return m
}

func (m *MockPromoRegistry) Fail(code string, err error) {
	m.errs[code] = err
}

func (m *MockPromoRegistry) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	m.Calls[code]++
	if err, ok := m.errs[code]; ok {
		return nil, err
	}
	promo, ok := m.codes[code]
	if !ok {
		return nil, domain.ErrPromoCodeNotFound
	}
	out := *promo
	return &out, nil
}

// MockCatalogRepository is a mock implementation of domain.CatalogRepository
type MockCatalogRepository struct {
	products   []domain.CatalogItem
	promotions []domain.SeasonalPromotion
}

func (m *MockCatalogRepository) Products() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(m.products))
	for i, p := range m.products {
		out[i] = p.Clone()
	}
	return out
}

func (m *MockCatalogRepository) ProductByID(id string) (*domain.CatalogItem, error) {
	for _, p := range m.products {
		if p.ID == id {
			item := p.Clone()
			return &item, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockCatalogRepository) Promotions() []domain.SeasonalPromotion {
	return append([]domain.SeasonalPromotion(nil), m.promotions...)
}

func style(s domain.ConnectorStyle) *domain.ConnectorStyle {
	return &s
}

func env(e domain.Environment) *domain.Environment {
	return &e
}

func system(s domain.FilterSystem) *domain.FilterSystem {
	return &s
}

// pentairCartridge is an in-ground Pentair cartridge rated for 15,000 to 25,000 gallons
func pentairCartridge() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          "pentair-5",
		Name:        "Pentair 5in Cartridge",
		Environment: domain.EnvironmentInGround,
		System:      domain.SystemCartridge,
		Brand:       "Pentair",
		Series:      ptr("Clean & Clear"),
		Dimensions: domain.Dimensions{
			DiameterIn:  ptr(5.0),
			LengthIn:    ptr(20.0),
			TopStyle:    style(domain.ConnectorOpen),
			BottomStyle: style(domain.ConnectorClosed),
		},
		FlowRateGPM:       100,
		RecommendedVolume: domain.VolumeRange{Min: 15000, Max: 25000},
		Compatibility: []domain.CompatibilityEntry{
			{Brand: "Pentair", SKU: "R173573"},
			{Brand: "Unicel", SKU: "C-7472"},
		},
		PromoTags:  []string{"spring-opening"},
		Price:      64.99,
		ProductURL: "/products/pentair-5",
	}
}

func haywardCartridge() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          "hayward-7",
		Name:        "Hayward 7in Cartridge",
		Environment: domain.EnvironmentInGround,
		System:      domain.SystemCartridge,
		Brand:       "Hayward",
		Dimensions: domain.Dimensions{
			DiameterIn: ptr(7.0),
			LengthIn:   ptr(18.5),
		},
		RecommendedVolume: domain.VolumeRange{Min: 20000, Max: 40000},
		Compatibility: []domain.CompatibilityEntry{
			{Brand: "Hayward", SKU: "CX1200RE"},
			{Brand: "Unicel", SKU: "C-7472"},
		},
		PromoTags:  []string{"spring-opening", "hayward"},
		ProductURL: "/products/hayward-7",
	}
}

func spaCartridge() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          "spa-50",
		Name:        "Spa Cartridge",
		Environment: domain.EnvironmentSpa,
		System:      domain.SystemCartridge,
		Brand:       "Pleatco",
		Dimensions: domain.Dimensions{
			DiameterIn: ptr(5.0),
			TopStyle:   style(domain.ConnectorThreaded),
		},
		RecommendedVolume: domain.VolumeRange{Min: 200, Max: 800},
		PromoTags:         []string{"spa-care"},
		ProductURL:        "/products/spa-50",
	}
}

func testCalendar() []domain.SeasonalPromotion {
	return []domain.SeasonalPromotion{
		{
			Tag:                   "spring-opening",
			Title:                 "Spring Pool Opening Sale",
			Months:                "March to May",
			RecommendedPromoCodes: []string{"SPRING15", "OPENING10"},
		},
		{
			Tag:                   "spa-care",
			Title:                 "Year-Round Spa Care",
			Months:                "All year",
			RecommendedPromoCodes: []string{"SPA5", "HOTTUB20"},
		},
		{
			Tag:                   "hayward",
			Title:                 "Hayward Owners Event",
			Months:                "April",
			RecommendedPromoCodes: []string{"HAYWARD12"},
		},
	}
}

func testRegistry() *MockPromoRegistry {
	return NewMockPromoRegistry(
		domain.PromoCode{Code: "SPRING15", DiscountPercent: 15, Active: true},
		domain.PromoCode{Code: "OPENING10", DiscountPercent: 10, Active: false},
		domain.PromoCode{Code: "SPA5", DiscountPercent: 5, Active: true},
		domain.PromoCode{Code: "HAYWARD12", DiscountPercent: 12, Active: true},
	)
}

package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/filtersfast/backend/internal/domain"
)

// DefaultTurnoverHours is the turnover time assumed when the shopper has not chosen one
const DefaultTurnoverHours = 8.0

// WizardServiceConfig holds configuration for the wizard service
type WizardServiceConfig struct {
	Tolerance            float64
	MaxResults           int
	DefaultTurnoverHours float64
	EnableDebugLogging   bool
	Clock                func() time.Time
}

// WizardService answers filter finder requests against an injected catalog
type WizardService struct {
	catalog         domain.CatalogRepository
	registry        domain.PromoCodeRegistry
	ranker          *ResultRanker
	defaultTurnover float64
	debug           bool
	clock           func() time.Time
}

// NewWizardService creates a new wizard service with dependencies
func NewWizardService(
	catalog domain.CatalogRepository,
	registry domain.PromoCodeRegistry,
	config WizardServiceConfig,
) *WizardService {
	turnover := config.DefaultTurnoverHours
	if turnover <= 0 {
		turnover = DefaultTurnoverHours
	}

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	return &WizardService{
		catalog:         catalog,
		registry:        registry,
		ranker:          NewResultRanker(NewScoringEngine(config.Tolerance), config.MaxResults),
		defaultTurnover: turnover,
		debug:           config.EnableDebugLogging,
		clock:           clock,
	}
}

// Assemble builds the wizard result for a constraint set.
// Flow: rank catalog -> join items -> overlay promotions -> flow rate -> reminder
func (s *WizardService) Assemble(ctx context.Context, constraints domain.ConstraintSet) *domain.WizardResult {
	return s.assemble(ctx, constraints, s.catalog.Products(), s.catalog.Promotions())
}

func (s *WizardService) assemble(
	ctx context.Context,
	constraints domain.ConstraintSet,
	catalog []domain.CatalogItem,
	calendar []domain.SeasonalPromotion,
) *domain.WizardResult {
	overlay := NewPromotionOverlay(calendar, newRegistrySnapshot(s.registry), s.clock())
	overlay.SetDebug(s.debug)

	ranked := s.ranker.rank(&constraints, catalog)
	matches := make([]domain.RankedMatch, 0, len(ranked))
	for _, rr := range ranked {
		item := catalog[rr.index].Clone()
		matches = append(matches, domain.RankedMatch{
			MatchResult: rr.result,
			Item:        item,
			Promotions:  overlay.Overlay(ctx, &item),
		})
		if s.debug {
			log.Printf("[WIZARD] %s scored %d: %s", rr.result.ProductID, rr.result.Score, strings.Join(rr.result.Reasoning, " | "))
		}
	}

	turnover := constraints.DesiredTurnoverHours
	if turnover == nil {
		turnover = &s.defaultTurnover
	}
	flowRate := ComputeFlowRate(constraints.PoolVolume, turnover)

	result := &domain.WizardResult{
		Constraints:        constraints,
		Matches:            matches,
		CalculatedFlowRate: flowRate,
	}
	if flowRate != nil {
		reminder := maintenanceReminder(*constraints.PoolVolume, *turnover, *flowRate)
		result.MaintenanceReminder = &reminder
	}

	if s.debug {
		log.Printf("[WIZARD] %d of %d catalog items matched", len(matches), len(catalog))
	}

	return result
}

// maintenanceReminder phrases the turnover goal for the shopper
func maintenanceReminder(poolVolume, turnoverHours, flowRate float64) string {
	return fmt.Sprintf("Circulate %s gallons every %s hours (%s GPM) to keep your water clear.",
		formatGallons(poolVolume), formatNumber(turnoverHours), formatNumber(flowRate))
}

// Product returns a single catalog item by ID
func (s *WizardService) Product(id string) (*domain.CatalogItem, error) {
	return s.catalog.ProductByID(id)
}

// Products returns every catalog item in catalog order
func (s *WizardService) Products() []domain.CatalogItem {
	return s.catalog.Products()
}

// Promotions returns the seasonal promotion calendar
func (s *WizardService) Promotions() []domain.SeasonalPromotion {
	return s.catalog.Promotions()
}

// CrossReference finds catalog items that replace the given OEM part number.
// SKU and brand compare case-insensitively; an empty brand matches any brand.
func (s *WizardService) CrossReference(brand, sku string) []domain.CatalogItem {
	sku = strings.TrimSpace(sku)
	brand = strings.TrimSpace(brand)

	matches := []domain.CatalogItem{}
	if sku == "" {
		return matches
	}

	for _, item := range s.catalog.Products() {
		for _, entry := range item.Compatibility {
			if !strings.EqualFold(entry.SKU, sku) {
				continue
			}
			if brand != "" && !strings.EqualFold(entry.Brand, brand) {
				continue
			}
			matches = append(matches, item)
			break
		}
	}

	return matches
}

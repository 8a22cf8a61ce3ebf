package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/filtersfast/backend/config"
	httpDelivery "github.com/filtersfast/backend/internal/delivery/http"
	"github.com/filtersfast/backend/internal/domain"
	"github.com/filtersfast/backend/internal/infrastructure/cache"
	"github.com/filtersfast/backend/internal/infrastructure/catalog"
	"github.com/filtersfast/backend/internal/infrastructure/promo"
	"github.com/filtersfast/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Filter Finder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	doc, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if cfg.Catalog.Path == "" {
		log.Printf("[CATALOG] Using bundled catalog")
	} else {
		log.Printf("[CATALOG] Loaded %s", cfg.Catalog.Path)
	}
	repo := catalog.NewMemoryRepository(doc)
	log.Printf("[CATALOG] %d products, %d promotions", repo.Len(), len(doc.Promotions))

	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	registry, closeRegistry, err := buildRegistry(ctx, cfg, doc, memoryCache)
	cancel()
	if err != nil {
		log.Fatalf("Failed to set up promo registry: %v", err)
	}
	defer closeRegistry()

	wizardService := usecase.NewWizardService(
		repo,
		registry,
		usecase.WizardServiceConfig{
			Tolerance:            cfg.Matching.Tolerance,
			MaxResults:           cfg.Matching.MaxResults,
			DefaultTurnoverHours: cfg.Matching.DefaultTurnoverHours,
			EnableDebugLogging:   cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: tolerance=%v, max_results=%d, turnover=%vh, debug=%v",
		cfg.Matching.Tolerance,
		cfg.Matching.MaxResults,
		cfg.Matching.DefaultTurnoverHours,
		cfg.Matching.EnableDebugLogging)

	handler := httpDelivery.NewHandler(wizardService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildRegistry selects the promo-code registry named in the configuration.
// Remote registries are wrapped in a TTL cache. The returned func releases
// any held resources.
func buildRegistry(
	ctx context.Context,
	cfg *config.Config,
	doc *catalog.Document,
	memoryCache domain.CacheRepository,
) (domain.PromoCodeRegistry, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Promo.Registry {
	case config.RegistryStatic:
		log.Printf("[PROMO] Static registry with %d codes", len(doc.PromoCodes))
		return promo.NewStaticRegistry(doc.PromoCodes), noop, nil

	case config.RegistryHTTP:
		client := promo.NewClient(cfg.Promo.APIKey, cfg.Promo.BaseURL, cfg.RateLimit.Promo)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("[PROMO] Client debug mode enabled")
		}
		log.Printf("[PROMO] HTTP registry: %s (cache ttl %s)", cfg.Promo.BaseURL, cfg.Promo.CacheTTL)
		return promo.NewCachedRegistry(client, memoryCache, cfg.Promo.CacheTTL), noop, nil

	case config.RegistrySQL:
		sqlRegistry, err := promo.OpenSQLRegistry(ctx, "postgres", cfg.Promo.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[PROMO] SQL registry connected (cache ttl %s)", cfg.Promo.CacheTTL)
		return promo.NewCachedRegistry(sqlRegistry, memoryCache, cfg.Promo.CacheTTL), sqlRegistry.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown promo registry %q", cfg.Promo.Registry)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

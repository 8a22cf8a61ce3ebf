package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filtersfast/backend/internal/domain"
	"github.com/filtersfast/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	wizardService *usecase.WizardService
}

// NewHandler creates a new HTTP handler
func NewHandler(wizardService *usecase.WizardService) *Handler {
	return &Handler{
		wizardService: wizardService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "filterfinder-backend",
		"version": "1.0.0",
	})
}

// MatchFilters handles filter finder requests.
// POST /api/v1/wizard/match with a ConstraintSet body.
func (h *Handler) MatchFilters(c *gin.Context) {
	if h.wizardService == nil {
		respondNotConfigured(c)
		return
	}

	var req domain.ConstraintSet
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	constraints, err := usecase.PrepareConstraints(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result := h.wizardService.Assemble(c.Request.Context(), constraints)
	c.JSON(http.StatusOK, result)
}

// GetProduct returns one catalog item.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	if h.wizardService == nil {
		respondNotConfigured(c)
		return
	}

	item, err := h.wizardService.Product(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Printf("[HTTP] Product lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListProducts returns the whole catalog in catalog order.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	if h.wizardService == nil {
		respondNotConfigured(c)
		return
	}

	products := h.wizardService.Products()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CrossReference finds catalog items that replace an OEM part.
// GET /api/v1/catalog/cross-reference?sku=...&brand=...
func (h *Handler) CrossReference(c *gin.Context) {
	if h.wizardService == nil {
		respondNotConfigured(c)
		return
	}

	sku := c.Query("sku")
	brand := c.Query("brand")
	if usecase.NormalizeText(&sku) == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "sku query parameter is required",
		})
		return
	}

	products := h.wizardService.CrossReference(brand, sku)
	c.JSON(http.StatusOK, gin.H{
		"sku":      sku,
		"brand":    brand,
		"products": products,
	})
}

// ListPromotions returns the seasonal promotion calendar.
// GET /api/v1/promotions
func (h *Handler) ListPromotions(c *gin.Context) {
	if h.wizardService == nil {
		respondNotConfigured(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promotions": h.wizardService.Promotions(),
	})
}

func respondNotConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "Filter finder service not configured",
	})
}

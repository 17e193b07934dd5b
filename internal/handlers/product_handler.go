package handlers

import (
	"log"
	"strconv"

	"greenleaf/internal/models"
	"greenleaf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles public catalog requests.
type ProductHandler struct {
	catalog *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the public product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/:slug", h.HandleGetProductBySlug)
}

// HandleListProducts lists active products matching the query filters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		StrainType: c.Query("strain_type"),
		Sort:       c.Query("sort"),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return fail(c, fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	products, total, err := h.catalog.BrowseProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
		"total":    total,
	})
}

// HandleGetProductBySlug retrieves one visible product for its detail page.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalog.GetProductBySlug(slug)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

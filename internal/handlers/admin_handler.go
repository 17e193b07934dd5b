package handlers

import (
	"log"

	"greenleaf/internal/models"
	"greenleaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the administrative dashboard API: product and
// template management, stock adjustments, order administration, and sales
// statistics. All routes require an admin session.
type AdminHandler struct {
	catalog   *services.CatalogService
	templates *services.TemplateService
	inventory *services.InventoryService
	orders    *services.OrderService
	validate  *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *services.CatalogService, templates *services.TemplateService, inventory *services.InventoryService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		templates: templates,
		inventory: inventory,
		orders:    orders,
		validate:  validator.New(),
	}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats", h.HandleStats)

	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleAdjustProduct)
	products.Patch("/:id", h.HandleEditProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
	products.Get("/:id/history", h.HandleStockHistory)

	templates := router.Group("/templates")
	templates.Get("/", h.HandleListTemplates)
	templates.Post("/", h.HandleCreateTemplate)
	templates.Put("/:id", h.HandleUpdateTemplate)
	templates.Delete("/:id", h.HandleDeleteTemplate)
	templates.Post("/:id/products", h.HandleDeriveProduct)

	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleListProducts lists all products regardless of status.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
	}
	products, total, err := h.catalog.ListAllProducts(filter)
	if err != nil {
		log.Printf("Error listing products for admin: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
		"total":    total,
	})
}

// HandleCreateProduct creates a standalone product (not derived from a
// template).
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return failValidation(c, err)
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return failFromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// AdjustProductRequest is the body of the stock/price mutation endpoint.
type AdjustProductRequest struct {
	Stock  int     `json:"stock" validate:"gte=0"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Active bool    `json:"active"`
	Reason string  `json:"reason" validate:"omitempty,max=500"`
}

// HandleAdjustProduct updates a product's stock/price/active flag and
// appends a stock-history row when the stock value changed.
func (h *AdminHandler) HandleAdjustProduct(c *fiber.Ctx) error {
	var req AdjustProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	product, history, err := h.inventory.AdjustProduct(c.Params("id"), req.Stock, req.Price, req.Active, req.Reason)
	if err != nil {
		log.Printf("Error adjusting product %s: %v", c.Params("id"), err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
		"history": history,
	})
}

// HandleEditProduct replaces a product's catalog fields (name, slug,
// description, status, image, strain metadata). Stock and price changes that
// need an audit trail go through HandleAdjustProduct instead.
func (h *AdminHandler) HandleEditProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return failValidation(c, err)
	}
	product.ID = c.Params("id")
	if err := h.catalog.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleDeleteProduct removes a product from the catalog.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Params("id")); err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleStockHistory lists the audit ledger for a product.
func (h *AdminHandler) HandleStockHistory(c *fiber.Ctx) error {
	history, err := h.inventory.History(c.Params("id"))
	if err != nil {
		log.Printf("Error listing stock history: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"history": history,
	})
}

// HandleListTemplates lists all genetic templates.
func (h *AdminHandler) HandleListTemplates(c *fiber.Ctx) error {
	templates, err := h.templates.ListTemplates()
	if err != nil {
		log.Printf("Error listing templates: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"templates": templates,
	})
}

// HandleCreateTemplate creates a new genetic template.
func (h *AdminHandler) HandleCreateTemplate(c *fiber.Ctx) error {
	var template models.GeneticTemplate
	if err := c.BodyParser(&template); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(template); err != nil {
		return failValidation(c, err)
	}
	if err := h.templates.CreateTemplate(&template); err != nil {
		log.Printf("Error creating template: %v", err)
		return failFromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"template": template,
	})
}

// HandleUpdateTemplate updates a genetic template.
func (h *AdminHandler) HandleUpdateTemplate(c *fiber.Ctx) error {
	var template models.GeneticTemplate
	if err := c.BodyParser(&template); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	template.ID = c.Params("id")
	if err := h.validate.Struct(template); err != nil {
		return failValidation(c, err)
	}
	if err := h.templates.UpdateTemplate(&template); err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"template": template,
	})
}

// HandleDeleteTemplate deletes a genetic template.
func (h *AdminHandler) HandleDeleteTemplate(c *fiber.Ctx) error {
	if err := h.templates.DeleteTemplate(c.Params("id")); err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleDeriveProduct creates a draft product from a genetic template.
func (h *AdminHandler) HandleDeriveProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return failValidation(c, err)
	}
	if err := h.templates.DeriveProduct(c.Params("id"), &product); err != nil {
		log.Printf("Error deriving product from template %s: %v", c.Params("id"), err)
		return failFromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleListOrders lists all orders for the admin dashboard.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders()
	if err != nil {
		log.Printf("Error listing orders for admin: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// UpdateOrderStatusRequest is the body of the status transition endpoint.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus sets an order's status.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}
	if err := h.orders.UpdateOrderStatus(c.Params("id"), req.Status); err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "order status updated",
	})
}

// HandleStats returns aggregate sales statistics.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.orders.Stats()
	if err != nil {
		log.Printf("Error computing stats: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

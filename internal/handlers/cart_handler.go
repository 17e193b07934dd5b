package handlers

import (
	"log"

	"greenleaf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the server-side cart mirror endpoints. All routes
// require a session.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart")
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleSetLine)
	cart.Delete("/:productID", h.HandleRemoveLine)
	cart.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the user's cart with derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.cartService.GetCart(currentUserID(c))
	if err != nil {
		log.Printf("Error reading cart: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    view,
	})
}

// CartLineRequest is the request body for setting a cart line.
type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleSetLine upserts one cart line, clamping the quantity to stock.
func (h *CartHandler) HandleSetLine(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "product_id is required")
	}

	line, err := h.cartService.SetQuantity(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"line":    line,
	})
}

// HandleRemoveLine deletes one product line from the cart.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	if err := h.cartService.RemoveLine(currentUserID(c), c.Params("productID")); err != nil {
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.cartService.ClearCart(currentUserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

package handlers

import (
	"log"

	"greenleaf/internal/models"
	"greenleaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles customer checkout and order lookups. All routes
// require a session.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Post("/", h.HandleCheckout)
	orders.Get("/", h.HandleGetOwnOrders)
	orders.Get("/:id", h.HandleGetOrderByID)
}

// HandleCheckout converts the user's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	order, err := h.orderService.Checkout(currentUserID(c), req)
	if err != nil {
		log.Printf("Checkout failed: %v", err)
		return failFromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"order_id": order.ID,
		"message":  "order placed",
	})
}

// HandleGetOwnOrders lists the orders the authenticated user placed.
func (h *OrderHandler) HandleGetOwnOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetOrdersForUser(currentUserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return failFromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// HandleGetOrderByID retrieves one order. Customers can only read their
// own orders; admins can read any.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrderByID(c.Params("id"))
	if err != nil {
		return failFromError(c, err)
	}
	if order.UserID != currentUserID(c) && !isAdmin(c) {
		return fail(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

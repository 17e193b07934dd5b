package services

import (
	"encoding/json"
	"fmt"
	"log"

	"greenleaf/internal/models"
	"greenleaf/internal/repositories"

	"github.com/google/uuid"
)

// OrderService handles checkout and order management.
type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repositories.OrderRepository, carts repositories.CartRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		publisher: publisher,
	}
}

// Checkout converts the user's cart into a persisted order. The repository
// performs the whole write sequence atomically: price snapshot, conditional
// stock decrement, order + item insert, cart clear. Totals always come from
// server-side prices, never from the client.
func (s *OrderService) Checkout(userID string, req models.CheckoutRequest) (*models.Order, error) {
	lines, err := s.carts.GetLines(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Phone:         req.Phone,
		Notes:         req.Notes,
	}

	if err := s.orders.PlaceOrder(order, lines); err != nil {
		return nil, err
	}

	s.publish(EventOrderCreated, map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	return order, nil
}

// GetAllOrders retrieves all orders (admin listing).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orders.GetAll()
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orders.GetByID(id)
}

// GetOrdersForUser retrieves the orders a customer placed.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orders.GetByUser(userID)
}

// UpdateOrderStatus sets an order's status. Transitions are admin-driven
// and unguarded; only the target value is validated.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.orders.UpdateStatus(id, status)
}

// Stats aggregates sales figures for the admin dashboard.
func (s *OrderService) Stats() (*models.SalesStats, error) {
	return s.orders.Stats()
}

// publish sends a domain event, best effort. Checkout has already committed
// by the time this runs, so a broker failure is logged and swallowed.
func (s *OrderService) publish(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(EventsExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

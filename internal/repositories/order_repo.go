package repositories

import "greenleaf/internal/models"

// OrderRepository defines the interface for order data access.
//
// PlaceOrder runs the whole checkout write sequence as one atomic unit:
// snapshot authoritative prices, conditionally decrement stock for every
// line, insert the order with its items, and clear the user's cart. On any
// failure nothing is persisted. A line whose product no longer has enough
// stock fails the order with ErrOutOfStock.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	PlaceOrder(order *models.Order, lines []models.CartLine) error
	UpdateStatus(id string, status string) error
	Stats() (*models.SalesStats, error)
}

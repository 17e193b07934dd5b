package repositories

import "greenleaf/internal/models"

// CartRepository defines the interface for the server-side cart mirror.
type CartRepository interface {
	GetLines(userID string) ([]models.CartLine, error)
	Upsert(line *models.CartLine) error
	Remove(userID, productID string) error
	Clear(userID string) error
}

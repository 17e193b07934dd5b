package repositories

import (
	"errors"
	"fmt"

	"greenleaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetLines retrieves all cart lines for a user, oldest first.
func (r *GORMCartRepository) GetLines(userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart lines for user %s: %w", userID, err)
	}
	return lines, nil
}

// Upsert inserts a cart line or replaces the quantity of an existing one.
func (r *GORMCartRepository) Upsert(line *models.CartLine) error {
	var existing models.CartLine
	err := r.db.First(&existing, "user_id = ? AND product_id = ?", line.UserID, line.ProductID).Error
	switch {
	case err == nil:
		existing.Quantity = line.Quantity
		if err := r.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update cart line: %w", err)
		}
		*line = existing
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		if err := r.db.Create(line).Error; err != nil {
			return fmt.Errorf("failed to create cart line: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up cart line: %w", err)
	}
}

// Remove deletes a single product line from a user's cart.
func (r *GORMCartRepository) Remove(userID, productID string) error {
	res := r.db.Delete(&models.CartLine{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line %s/%s: %w", userID, productID, ErrNotFound)
	}
	return nil
}

// Clear deletes all cart lines for a user.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Delete(&models.CartLine{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

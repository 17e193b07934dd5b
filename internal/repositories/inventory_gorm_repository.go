package repositories

import (
	"errors"
	"fmt"

	"greenleaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository defines the interface for admin stock mutations and
// the stock-history ledger.
type InventoryRepository interface {
	// ApplyAdjustment updates a product's stock/price/status and, when the
	// stock value actually changed, appends exactly one StockHistory row in
	// the same transaction. The returned history row is nil when the stock
	// was unchanged.
	ApplyAdjustment(productID string, adj models.StockAdjustment) (*models.Product, *models.StockHistory, error)
	History(productID string) ([]models.StockHistory, error)
}

// GORMInventoryRepository is a GORM implementation of InventoryRepository.
type GORMInventoryRepository struct {
	db *gorm.DB
}

// NewGORMInventoryRepository creates a new instance of GORMInventoryRepository.
func NewGORMInventoryRepository(db *gorm.DB) *GORMInventoryRepository {
	return &GORMInventoryRepository{
		db: db,
	}
}

// ApplyAdjustment updates the product row and appends the audit row
// atomically.
func (r *GORMInventoryRepository) ApplyAdjustment(productID string, adj models.StockAdjustment) (*models.Product, *models.StockHistory, error) {
	var product models.Product
	var history *models.StockHistory

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", productID, ErrNotFound)
			}
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}

		previousStock := product.StockQuantity
		product.StockQuantity = adj.Stock
		product.Price = adj.Price
		product.Status = adj.Status
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product %s: %w", productID, err)
		}

		if adj.Stock != previousStock {
			delta := adj.Stock - previousStock
			changeType := models.StockChangeAdd
			if delta < 0 {
				changeType = models.StockChangeRemove
				delta = -delta
			}
			history = &models.StockHistory{
				ID:             uuid.New().String(),
				ProductID:      productID,
				ChangeType:     changeType,
				QuantityChange: delta,
				PreviousStock:  previousStock,
				NewStock:       adj.Stock,
				Reason:         adj.Reason,
			}
			if err := tx.Create(history).Error; err != nil {
				return fmt.Errorf("failed to append stock history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &product, history, nil
}

// History lists the stock ledger for a product, newest first.
func (r *GORMInventoryRepository) History(productID string) ([]models.StockHistory, error) {
	var rows []models.StockHistory
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock history for %s: %w", productID, err)
	}
	return rows, nil
}

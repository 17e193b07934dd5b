package services

import (
	"encoding/json"
	"log"

	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
)

// InventoryService handles admin stock/price mutations and the audit
// ledger.
type InventoryService struct {
	inventory repositories.InventoryRepository
	publisher EventPublisher
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventory repositories.InventoryRepository, publisher EventPublisher) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		publisher: publisher,
	}
}

// AdjustProduct applies an admin stock/price/active mutation. The active
// flag maps onto the product's status field (active/inactive); draft is an
// authoring state reachable only through product editing. When the stock
// value changed, exactly one StockHistory row is appended atomically with
// the update and a stock.adjusted event is published.
func (s *InventoryService) AdjustProduct(productID string, stock int, price float64, active bool, reason string) (*models.Product, *models.StockHistory, error) {
	status := models.ProductStatusInactive
	if active {
		status = models.ProductStatusActive
	}

	product, history, err := s.inventory.ApplyAdjustment(productID, models.StockAdjustment{
		Stock:  stock,
		Price:  price,
		Status: status,
		Reason: reason,
	})
	if err != nil {
		return nil, nil, err
	}

	if history != nil && s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"product_id":      history.ProductID,
			"change_type":     history.ChangeType,
			"quantity_change": history.QuantityChange,
			"previous_stock":  history.PreviousStock,
			"new_stock":       history.NewStock,
			"reason":          history.Reason,
		})
		if err != nil {
			log.Printf("Failed to marshal stock event: %v", err)
		} else if err := s.publisher.Publish(EventsExchange, EventStockAdjusted, body); err != nil {
			log.Printf("Warning: failed to publish stock.adjusted event: %v", err)
		}
	}
	return product, history, nil
}

// History lists the stock ledger for a product, newest first.
func (s *InventoryService) History(productID string) ([]models.StockHistory, error) {
	return s.inventory.History(productID)
}

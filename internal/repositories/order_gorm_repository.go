package repositories

import (
	"errors"
	"fmt"

	"greenleaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first, with their items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders placed by a user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// PlaceOrder assembles an order from cart lines inside one transaction.
// Stock is decremented with a conditional update; a zero-row match means the
// product was oversold by a concurrent checkout and the whole transaction
// rolls back with ErrOutOfStock.
func (r *GORMOrderRepository) PlaceOrder(order *models.Order, lines []models.CartLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
				}
				return fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for %s: %w", product.Name, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", product.Name, ErrOutOfStock)
			}

			item := models.OrderItem{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: product.Price * float64(line.Quantity),
			}
			items = append(items, item)
			total += item.TotalPrice
		}

		order.TotalAmount = total
		order.Items = items
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if order.UserID != "" {
			if err := tx.Delete(&models.CartLine{}, "user_id = ?", order.UserID).Error; err != nil {
				return fmt.Errorf("failed to clear cart for user %s: %w", order.UserID, err)
			}
		}
		return nil
	})
}

// UpdateStatus sets the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

// Stats aggregates order and inventory figures for the admin dashboard.
func (r *GORMOrderRepository) Stats() (*models.SalesStats, error) {
	stats := &models.SalesStats{}

	if err := r.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := r.db.Model(&models.Product{}).
		Where("stock_quantity <= ? AND status = ?", models.LowStockThreshold, models.ProductStatusActive).
		Count(&stats.LowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count low-stock products: %w", err)
	}

	if err := r.db.Table("order_items").
		Select("order_items.product_id, products.name, SUM(order_items.quantity) AS quantity_sold").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", models.OrderStatusCancelled).
		Group("order_items.product_id, products.name").
		Order("quantity_sold DESC").
		Limit(5).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to rank top products: %w", err)
	}
	return stats, nil
}

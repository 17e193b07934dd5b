package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"greenleaf/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// leans on MockProductRepository for stock decrements and on
// MockCartRepository for cart clearing, so a full checkout can be exercised
// without a database.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	carts    *MockCartRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository, carts *MockCartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
		carts:    carts,
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetByUser returns all orders placed by a user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// PlaceOrder assembles an order from cart lines. Decrements are applied one
// line at a time; on failure the already-applied decrements are compensated
// so the mock behaves like a rolled-back transaction.
func (r *MockOrderRepository) PlaceOrder(order *models.Order, lines []models.CartLine) error {
	type applied struct {
		productID string
		qty       int
	}
	var done []applied

	rollback := func() {
		for _, a := range done {
			r.products.RestoreStock(a.productID, a.qty)
		}
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := r.products.TryDecrementStock(line.ProductID, line.Quantity)
		if err != nil {
			rollback()
			return err
		}
		done = append(done, applied{line.ProductID, line.Quantity})

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
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	r.mu.Lock()
	r.orders[order.ID] = *order
	r.mu.Unlock()

	if order.UserID != "" && r.carts != nil {
		if err := r.carts.Clear(order.UserID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus sets the status of an existing order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Stats aggregates order figures from the in-memory state.
func (r *MockOrderRepository) Stats() (*models.SalesStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.SalesStats{}
	sold := make(map[string]int)
	for _, o := range r.orders {
		stats.TotalOrders++
		if o.Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
		if o.Status != models.OrderStatusCancelled {
			stats.TotalRevenue += o.TotalAmount
			for _, item := range o.Items {
				sold[item.ProductID] += item.Quantity
			}
		}
	}

	products, _, err := r.products.List(models.ProductFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
		if p.Status == models.ProductStatusActive && p.StockQuantity <= models.LowStockThreshold {
			stats.LowStock++
		}
	}

	for id, qty := range sold {
		stats.TopProducts = append(stats.TopProducts, models.ProductSales{
			ProductID:    id,
			Name:         names[id],
			QuantitySold: qty,
		})
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		return stats.TopProducts[i].QuantitySold > stats.TopProducts[j].QuantitySold
	})
	if len(stats.TopProducts) > 5 {
		stats.TopProducts = stats.TopProducts[:5]
	}
	return stats, nil
}

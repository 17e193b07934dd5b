package services_test

import (
	"sync"
	"testing"

	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
	"greenleaf/internal/services"

	"github.com/stretchr/testify/assert"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type orderFixture struct {
	products  *repositories.MockProductRepository
	carts     *repositories.MockCartRepository
	orders    *repositories.MockOrderRepository
	publisher *recordingPublisher
	service   *services.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository()
	orders := repositories.NewMockOrderRepository(products, carts)
	publisher := &recordingPublisher{}
	return &orderFixture{
		products:  products,
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		service:   services.NewOrderService(orders, carts, publisher),
	}
}

func (f *orderFixture) seedProduct(t *testing.T, id string, price float64, stock int) {
	t.Helper()
	err := f.products.Create(&models.Product{
		ID:            id,
		Slug:          id,
		Name:          "Product " + id,
		Price:         price,
		StockQuantity: stock,
		Status:        models.ProductStatusActive,
	})
	assert.NoError(t, err)
}

func checkoutForm() models.CheckoutRequest {
	return models.CheckoutRequest{
		CustomerName:  "Jamie Doe",
		CustomerEmail: "jamie@example.com",
		Address:       "12 High St",
		City:          "Portland",
		State:         "OR",
		Zip:           "97201",
	}
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Checkout("user-1", checkoutForm())
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	orders, err := f.orders.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.publisher.published())
}

func TestOrderService_Checkout(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", 35.00, 10)
	f.seedProduct(t, "prod-2", 12.00, 4)

	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-1", Quantity: 2}))
	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-2", Quantity: 3}))

	order, err := f.service.Checkout("user-1", checkoutForm())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// The total comes from server-side prices: 2*35 + 3*12.
	assert.InDelta(t, 106.00, order.TotalAmount, 1e-9)
	assert.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.InDelta(t, item.UnitPrice*float64(item.Quantity), item.TotalPrice, 1e-9)
	}

	// Stock was decremented per line.
	p1, _ := f.products.GetByID("prod-1")
	assert.Equal(t, 8, p1.StockQuantity)
	p2, _ := f.products.GetByID("prod-2")
	assert.Equal(t, 1, p2.StockQuantity)

	// The cart is cleared and the event published.
	lines, err := f.carts.GetLines("user-1")
	assert.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, []string{services.EventOrderCreated}, f.publisher.published())
}

func TestOrderService_Checkout_OutOfStockRollsBack(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", 35.00, 10)
	f.seedProduct(t, "prod-2", 12.00, 1)

	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-1", Quantity: 2}))
	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-2", Quantity: 5}))

	_, err := f.service.Checkout("user-1", checkoutForm())
	assert.ErrorIs(t, err, repositories.ErrOutOfStock)

	// No order, no decrement on either product, cart untouched.
	orders, _ := f.orders.GetAll()
	assert.Empty(t, orders)
	p1, _ := f.products.GetByID("prod-1")
	assert.Equal(t, 10, p1.StockQuantity)
	p2, _ := f.products.GetByID("prod-2")
	assert.Equal(t, 1, p2.StockQuantity)
	lines, _ := f.carts.GetLines("user-1")
	assert.Len(t, lines, 2)
	assert.Empty(t, f.publisher.published())
}

// Two simultaneous checkouts against a product with stock 1: at most one may
// succeed, and the loser must fail with an out-of-stock condition.
func TestOrderService_ConcurrentCheckoutLowStock(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", 35.00, 1)

	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-a", ProductID: "prod-1", Quantity: 1}))
	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-b", ProductID: "prod-1", Quantity: 1}))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []string{"user-a", "user-b"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := f.service.Checkout(userID, checkoutForm())
			errs <- err
		}(userID)
	}
	wg.Wait()
	close(errs)

	var succeeded, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, repositories.ErrOutOfStock)
			outOfStock++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, outOfStock)

	product, _ := f.products.GetByID("prod-1")
	assert.Equal(t, 0, product.StockQuantity)

	orders, _ := f.orders.GetAll()
	assert.Len(t, orders, 1)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", 35.00, 5)
	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-1", Quantity: 1}))
	order, err := f.service.Checkout("user-1", checkoutForm())
	assert.NoError(t, err)

	assert.NoError(t, f.service.UpdateOrderStatus(order.ID, models.OrderStatusShipped))
	updated, err := f.service.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	err = f.service.UpdateOrderStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	err = f.service.UpdateOrderStatus("no-such-order", models.OrderStatusShipped)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_Stats(t *testing.T) {
	f := newOrderFixture(t)
	f.seedProduct(t, "prod-1", 10.00, 100)
	f.seedProduct(t, "prod-2", 20.00, 3) // low stock

	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-1", ProductID: "prod-1", Quantity: 4}))
	first, err := f.service.Checkout("user-1", checkoutForm())
	assert.NoError(t, err)

	assert.NoError(t, f.carts.Upsert(&models.CartLine{UserID: "user-2", ProductID: "prod-1", Quantity: 1}))
	second, err := f.service.Checkout("user-2", checkoutForm())
	assert.NoError(t, err)
	assert.NoError(t, f.service.UpdateOrderStatus(second.ID, models.OrderStatusCancelled))

	stats, err := f.service.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	// Cancelled orders do not count toward revenue.
	assert.InDelta(t, first.TotalAmount, stats.TotalRevenue, 1e-9)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.LowStock)
	assert.Len(t, stats.TopProducts, 1)
	assert.Equal(t, "prod-1", stats.TopProducts[0].ProductID)
	assert.Equal(t, 4, stats.TopProducts[0].QuantitySold)
}

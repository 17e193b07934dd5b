package models

// LowStockThreshold is the stock level at or below which a product counts as
// low stock in the admin dashboard.
const LowStockThreshold = 5

// ProductSales is one row of the top-sellers ranking.
type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

// SalesStats aggregates order and inventory figures for the admin dashboard.
// Cancelled orders are excluded from revenue and the top-seller ranking.
type SalesStats struct {
	TotalOrders   int64          `json:"total_orders"`
	TotalRevenue  float64        `json:"total_revenue"`
	PendingOrders int64          `json:"pending_orders"`
	LowStock      int64          `json:"low_stock_products"`
	TopProducts   []ProductSales `json:"top_products"`
}

package models

import "time"

// CartLine is one row of the server-side cart mirror, unique per
// (user, product). The client keeps its own local cart; this table is the
// copy the order assembler reads at checkout.
type CartLine struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index:idx_cart_user_product,unique;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"index:idx_cart_user_product,unique;type:varchar(36)"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLineView is a cart line joined with current product data for display.
type CartLineView struct {
	ProductID     string  `json:"product_id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity"`
	Quantity      int     `json:"quantity"`
	LineTotal     float64 `json:"line_total"`
}

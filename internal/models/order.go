package models

import "time"

// Order statuses. Transitions are admin-driven and unguarded: any known
// status may follow any other.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one product-quantity line within a persisted order. UnitPrice
// is the authoritative server-side price snapshotted at order time.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID  string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// Order represents a customer order assembled from the user's cart.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id,omitempty" gorm:"index;type:varchar(36)"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"index;type:varchar(20)"`

	CustomerName  string `json:"customer_name" gorm:"type:varchar(100)"`
	CustomerEmail string `json:"customer_email" gorm:"type:varchar(255)"`
	Address       string `json:"address" gorm:"type:varchar(255)"`
	City          string `json:"city" gorm:"type:varchar(100)"`
	State         string `json:"state" gorm:"type:varchar(100)"`
	Zip           string `json:"zip" gorm:"type:varchar(20)"`
	Phone         string `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Notes         string `json:"notes,omitempty" gorm:"type:varchar(1000)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckoutRequest is the customer/shipping form posted at checkout. Phone
// and notes are the only optional fields.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Address       string `json:"address" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,max=100"`
	Zip           string `json:"zip" validate:"required,max=20"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Notes         string `json:"notes" validate:"omitempty,max=1000"`
}

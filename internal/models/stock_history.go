package models

import "time"

// Stock change types, derived from the sign of the delta.
const (
	StockChangeAdd    = "add"
	StockChangeRemove = "remove"
)

// StockAdjustment carries an admin-initiated stock/price/status mutation,
// applied atomically together with its audit row.
type StockAdjustment struct {
	Stock  int
	Price  float64
	Status string
	Reason string
}

// StockHistory is one row of the append-only inventory audit ledger. A row
// is written only when an admin-initiated stock value differs from the
// stored one.
type StockHistory struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID      string    `json:"product_id" gorm:"index;type:varchar(36)"`
	ChangeType     string    `json:"change_type" gorm:"type:varchar(10)"`
	QuantityChange int       `json:"quantity_change"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	Reason         string    `json:"reason" gorm:"type:varchar(500)"`
	CreatedAt      time.Time `json:"created_at"`
}

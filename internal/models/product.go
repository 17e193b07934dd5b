package models

import "gorm.io/gorm"

// Product statuses. Status is the single authoritative visibility field:
// only active products appear in the public catalog.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDraft    = "draft"
)

// Product represents a sellable item in the store, usually derived from a
// GeneticTemplate.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Slug          string  `json:"slug" gorm:"uniqueIndex;type:varchar(150)" validate:"required,min=3,max=150"`
	Name          string  `json:"name" validate:"required,min=3,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Category      string  `json:"category" gorm:"index;type:varchar(100)"`
	Status        string  `json:"status" gorm:"index;type:varchar(20);default:draft" validate:"omitempty,oneof=active inactive draft"`
	Featured      bool    `json:"featured"`
	ImageURL      string  `json:"image_url" validate:"omitempty,max=500"`

	// Strain metadata, normally copied from the genetic template.
	TemplateID string  `json:"template_id,omitempty" gorm:"index;type:varchar(36)"`
	StrainType string  `json:"strain_type" gorm:"type:varchar(20)" validate:"omitempty,oneof=indica sativa hybrid"`
	THCMin     float64 `json:"thc_min" validate:"gte=0,lte=100"`
	THCMax     float64 `json:"thc_max" validate:"gte=0,lte=100"`
	CBDMin     float64 `json:"cbd_min" validate:"gte=0,lte=100"`
	CBDMax     float64 `json:"cbd_max" validate:"gte=0,lte=100"`
	Effects    string  `json:"effects"` // comma-joined, e.g. "relaxed,sleepy"
	Flavors    string  `json:"flavors"` // comma-joined, e.g. "citrus,pine"

	gorm.Model `json:"-"`
}

// Visible reports whether the product may be shown in the public catalog.
func (p *Product) Visible() bool {
	return p.Status == ProductStatusActive
}

// ProductFilter is the parameter object compiled into a catalog query.
// Zero values mean "no constraint".
type ProductFilter struct {
	Search     string
	Category   string
	StrainType string
	Featured   *bool
	Status     string // empty means "any status" (admin listing)
	Sort       string // price_asc, price_desc, name, newest
	Limit      int
}

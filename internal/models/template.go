package models

import "gorm.io/gorm"

// GeneticTemplate is an admin-defined strain archetype from which concrete
// sellable products are derived. Products copy the template's strain
// metadata at creation time; later template edits do not retouch products.
type GeneticTemplate struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	StrainType  string  `json:"strain_type" gorm:"type:varchar(20)" validate:"required,oneof=indica sativa hybrid"`
	THCMin      float64 `json:"thc_min" validate:"gte=0,lte=100"`
	THCMax      float64 `json:"thc_max" validate:"gte=0,lte=100,gtefield=THCMin"`
	CBDMin      float64 `json:"cbd_min" validate:"gte=0,lte=100"`
	CBDMax      float64 `json:"cbd_max" validate:"gte=0,lte=100,gtefield=CBDMin"`
	Effects     string  `json:"effects"`
	Flavors     string  `json:"flavors"`
	Description string  `json:"description" validate:"omitempty,max=2000"`

	gorm.Model `json:"-"`
}

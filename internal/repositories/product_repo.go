package repositories

import (
	"greenleaf/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter models.ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

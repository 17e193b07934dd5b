package services

import (
	"fmt"

	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
)

// CatalogService handles product browsing and admin product management.
type CatalogService struct {
	products repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		products: products,
	}
}

// BrowseProducts lists products for the public storefront. Only active
// products are visible regardless of what the filter asks for.
func (s *CatalogService) BrowseProducts(filter models.ProductFilter) ([]models.Product, int64, error) {
	filter.Status = models.ProductStatusActive
	return s.products.List(filter)
}

// ListAllProducts lists products for the admin dashboard without a status
// gate.
func (s *CatalogService) ListAllProducts(filter models.ProductFilter) ([]models.Product, int64, error) {
	return s.products.List(filter)
}

// GetProductBySlug retrieves a product for its detail page. Products that
// are not active are treated as absent for the storefront.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !product.Visible() {
		return nil, fmt.Errorf("product %s: %w", slug, repositories.ErrNotFound)
	}
	return product, nil
}

// GetProductByID retrieves a product without a visibility gate (admin use).
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.products.GetByID(id)
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if product.Status == "" {
		product.Status = models.ProductStatusDraft
	}
	return s.products.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.products.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.products.Delete(id)
}

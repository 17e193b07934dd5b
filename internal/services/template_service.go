package services

import (
	"greenleaf/internal/models"
	"greenleaf/internal/repositories"
)

// TemplateService handles admin management of genetic templates and
// deriving products from them.
type TemplateService struct {
	templates repositories.TemplateRepository
	products  repositories.ProductRepository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templates repositories.TemplateRepository, products repositories.ProductRepository) *TemplateService {
	return &TemplateService{
		templates: templates,
		products:  products,
	}
}

// ListTemplates retrieves all genetic templates.
func (s *TemplateService) ListTemplates() ([]models.GeneticTemplate, error) {
	return s.templates.GetAll()
}

// GetTemplateByID retrieves a single genetic template.
func (s *TemplateService) GetTemplateByID(id string) (*models.GeneticTemplate, error) {
	return s.templates.GetByID(id)
}

// CreateTemplate creates a new genetic template.
func (s *TemplateService) CreateTemplate(template *models.GeneticTemplate) error {
	return s.templates.Create(template)
}

// UpdateTemplate updates an existing genetic template. Products already
// derived from it keep the metadata they copied at creation time.
func (s *TemplateService) UpdateTemplate(template *models.GeneticTemplate) error {
	return s.templates.Update(template)
}

// DeleteTemplate deletes a genetic template.
func (s *TemplateService) DeleteTemplate(id string) error {
	return s.templates.Delete(id)
}

// DeriveProduct creates a draft product seeded with the template's strain
// metadata. The caller supplies the commercial fields (slug, name, price,
// stock, category, image).
func (s *TemplateService) DeriveProduct(templateID string, product *models.Product) error {
	template, err := s.templates.GetByID(templateID)
	if err != nil {
		return err
	}

	product.TemplateID = template.ID
	product.StrainType = template.StrainType
	product.THCMin = template.THCMin
	product.THCMax = template.THCMax
	product.CBDMin = template.CBDMin
	product.CBDMax = template.CBDMax
	product.Effects = template.Effects
	product.Flavors = template.Flavors
	if product.Description == "" {
		product.Description = template.Description
	}
	product.Status = models.ProductStatusDraft

	return s.products.Create(product)
}

package repositories

import "greenleaf/internal/models"

// TemplateRepository defines the interface for genetic-template data access.
type TemplateRepository interface {
	GetAll() ([]models.GeneticTemplate, error)
	GetByID(id string) (*models.GeneticTemplate, error)
	Create(template *models.GeneticTemplate) error
	Update(template *models.GeneticTemplate) error
	Delete(id string) error
}

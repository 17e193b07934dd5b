package repositories

import (
	"errors"
	"fmt"

	"greenleaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTemplateRepository is a GORM implementation of TemplateRepository.
type GORMTemplateRepository struct {
	db *gorm.DB
}

// NewGORMTemplateRepository creates a new instance of GORMTemplateRepository.
func NewGORMTemplateRepository(db *gorm.DB) *GORMTemplateRepository {
	return &GORMTemplateRepository{
		db: db,
	}
}

// GetAll retrieves all genetic templates ordered by name.
func (r *GORMTemplateRepository) GetAll() ([]models.GeneticTemplate, error) {
	var templates []models.GeneticTemplate
	if err := r.db.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	return templates, nil
}

// GetByID retrieves a single genetic template by its ID.
func (r *GORMTemplateRepository) GetByID(id string) (*models.GeneticTemplate, error) {
	var template models.GeneticTemplate
	if err := r.db.First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get template by ID %s: %w", id, err)
	}
	return &template, nil
}

// Create creates a new genetic template.
func (r *GORMTemplateRepository) Create(template *models.GeneticTemplate) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	if err := r.db.Create(template).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// Update updates an existing genetic template. Existence is verified first
// because Save would otherwise insert a fresh row for an unknown ID.
func (r *GORMTemplateRepository) Update(template *models.GeneticTemplate) error {
	var existing models.GeneticTemplate
	if err := r.db.First(&existing, "id = ?", template.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("template %s: %w", template.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update template: %w", err)
	}
	template.CreatedAt = existing.CreatedAt
	if err := r.db.Save(template).Error; err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

// Delete deletes a genetic template by its ID.
func (r *GORMTemplateRepository) Delete(id string) error {
	res := r.db.Delete(&models.GeneticTemplate{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete template: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

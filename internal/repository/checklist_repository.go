package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// Create creates a new checklist item
func (r *GormChecklistRepository) Create(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// FindByID finds a checklist item by ID
func (r *GormChecklistRepository) FindByID(id uint64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves checklist items in insertion order
func (r *GormChecklistRepository) List(filter ChecklistFilter) ([]models.ChecklistItem, error) {
	query := r.db.Model(&models.ChecklistItem{})

	if filter.Establishment != nil {
		query = query.Where("establishment = ?", *filter.Establishment)
	}
	if filter.ListType != nil {
		query = query.Where("list_type = ?", *filter.ListType)
	}

	var items []models.ChecklistItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to a checklist item
func (r *GormChecklistRepository) Update(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}

// Delete removes a checklist item; deleting a missing id is not an error
func (r *GormChecklistRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ChecklistItem{}, id).Error
}

package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/utils"
)

// GormInventoryRepository is a GORM implementation of InventoryRepository
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Create creates a new inventory item
func (r *GormInventoryRepository) Create(item *models.InventoryItem) error {
	item.Category = utils.NormalizeCategory(item.Category)
	return r.db.Create(item).Error
}

// FindByID finds an inventory item by ID
func (r *GormInventoryRepository) FindByID(id uint64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves inventory items ordered by name ascending. A category
// prefix matches the category itself and its whole subtree with one clause,
// no per-row string splitting.
func (r *GormInventoryRepository) List(filter InventoryFilter) ([]models.InventoryItem, error) {
	query := r.db.Model(&models.InventoryItem{})

	if filter.Establishment != nil {
		query = query.Where("establishment = ?", *filter.Establishment)
	}
	if filter.CategoryPrefix != nil {
		prefix := utils.NormalizeCategory(*filter.CategoryPrefix)
		if prefix != "" {
			query = query.Where("category = ? OR category LIKE ?", prefix, prefix+utils.CategorySeparator+"%")
		}
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var items []models.InventoryItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to an inventory item
func (r *GormInventoryRepository) Update(item *models.InventoryItem) error {
	item.Category = utils.NormalizeCategory(item.Category)
	return r.db.Save(item).Error
}

// Delete removes an inventory item; deleting a missing id is not an error
func (r *GormInventoryRepository) Delete(id uint64) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}

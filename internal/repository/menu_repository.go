package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormMenuRepository is a GORM implementation of MenuRepository
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &GormMenuRepository{db: db}
}

// Create creates a new menu item
func (r *GormMenuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// FindByID loads a menu item with its ingredients
func (r *GormMenuRepository) FindByID(id uint64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Ingredients").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List retrieves menu items in insertion order
func (r *GormMenuRepository) List(establishment *string) ([]models.MenuItem, error) {
	query := r.db.Model(&models.MenuItem{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var items []models.MenuItem
	if err := query.Order("id ASC").Preload("Ingredients").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddIngredient appends a recipe row to a menu item
func (r *GormMenuRepository) AddIngredient(ing *models.Ingredient) error {
	return r.db.Create(ing).Error
}

// ListIngredients returns the recipe rows of a menu item
func (r *GormMenuRepository) ListIngredients(menuItemID uint64) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("menu_item_id = ?", menuItemID).
		Order("id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormEquipmentRepository is a GORM implementation of EquipmentRepository
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// Create creates a new equipment record
func (r *GormEquipmentRepository) Create(eq *models.Equipment) error {
	return r.db.Create(eq).Error
}

// FindByID finds equipment by ID
func (r *GormEquipmentRepository) FindByID(id uint64) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.db.First(&eq, id).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

// List retrieves equipment in insertion order
func (r *GormEquipmentRepository) List(establishment *string) ([]models.Equipment, error) {
	query := r.db.Model(&models.Equipment{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var items []models.Equipment
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists changes to an equipment record
func (r *GormEquipmentRepository) Update(eq *models.Equipment) error {
	return r.db.Save(eq).Error
}

// Delete removes equipment; deleting a missing id is not an error
func (r *GormEquipmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Equipment{}, id).Error
}

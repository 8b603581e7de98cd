package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormTimelineRepository is a GORM implementation of TimelineRepository
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewTimelineRepository creates a new TimelineRepository
func NewTimelineRepository(db *gorm.DB) TimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Append inserts an event. There are intentionally no update or delete
// methods on this repository.
func (r *GormTimelineRepository) Append(event *models.TimelineEvent) error {
	return r.db.Create(event).Error
}

// List returns a page of events, newest first
func (r *GormTimelineRepository) List(establishment *string, limit, offset int) ([]models.TimelineEvent, error) {
	query := r.db.Model(&models.TimelineEvent{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var events []models.TimelineEvent
	if err := query.Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

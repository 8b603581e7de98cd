package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListByRecipient returns a user's notifications, newest first
func (r *GormNotificationRepository) ListByRecipient(recipientID uint64) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flags a notification as read
func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}

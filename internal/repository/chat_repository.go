package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// Create creates a new chat message
func (r *GormChatRepository) Create(msg *models.ChatMessage) error {
	return r.db.Create(msg).Error
}

// List returns messages in insertion order
func (r *GormChatRepository) List(establishment *string) ([]models.ChatMessage, error) {
	query := r.db.Model(&models.ChatMessage{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var messages []models.ChatMessage
	if err := query.Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

package models

import "time"

type Notification struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	RecipientID   uint64    `gorm:"not null;index" json:"recipient_id"`
	Type          string    `gorm:"type:varchar(50);not null" json:"type"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Message       string    `gorm:"type:text" json:"message"`
	RelatedUserID *uint64   `json:"related_user_id,omitempty"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

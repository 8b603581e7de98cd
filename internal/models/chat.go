package models

import "time"

type ChatMessage struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	Sender        string    `gorm:"type:varchar(255);not null" json:"sender"`
	SenderRole    Role      `gorm:"type:varchar(20)" json:"sender_role"`
	Establishment string    `gorm:"type:varchar(255);not null;index" json:"establishment"`
	Type          string    `gorm:"type:varchar(50);default:'message'" json:"type"`
	Timestamp     time.Time `json:"timestamp"`
}

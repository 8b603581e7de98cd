package models

import "time"

type ChecklistType string

const (
	ChecklistTypeOpening ChecklistType = "opening"
	ChecklistTypeShift   ChecklistType = "shift"
	ChecklistTypeClosing ChecklistType = "closing"
)

type ChecklistItem struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	Text          string        `gorm:"type:text;not null" json:"text"`
	ListType      ChecklistType `gorm:"type:varchar(20);not null;index" json:"list_type"`
	Completed     bool          `gorm:"not null;default:false" json:"completed"`
	CompletedBy   string        `gorm:"type:varchar(255)" json:"completed_by,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	AssignedTo    string        `gorm:"type:varchar(255)" json:"assigned_to,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	Establishment string        `gorm:"type:varchar(255);not null;index" json:"establishment"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

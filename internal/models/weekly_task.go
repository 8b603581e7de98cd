package models

import "time"

type WeeklyTask struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Text          string     `gorm:"type:text;not null" json:"text"`
	AssignedTo    string     `gorm:"type:varchar(255)" json:"assigned_to,omitempty"`
	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	Establishment string     `gorm:"type:varchar(255);not null;index" json:"establishment"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Completions []TaskCompletion `gorm:"foreignKey:TaskID" json:"completions,omitempty"`
}

// TaskCompletion is an append-only history row; completing a task inserts
// one and flips WeeklyTask.Completed.
type TaskCompletion struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	CompletedBy string    `gorm:"type:varchar(255);not null" json:"completed_by"`
	Photo       string    `gorm:"type:text" json:"photo,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

package models

import "time"

type TimelineEventType string

const (
	TimelineTypeInfo    TimelineEventType = "info"
	TimelineTypeSuccess TimelineEventType = "success"
	TimelineTypeWarning TimelineEventType = "warning"
	TimelineTypeAlert   TimelineEventType = "alert"
)

// TimelineEvent is the append-only audit log. Rows are never updated or
// deleted; reads are newest first.
type TimelineEvent struct {
	ID            uint64            `gorm:"primarykey" json:"id"`
	Text          string            `gorm:"type:text;not null" json:"text"`
	Establishment string            `gorm:"type:varchar(255);not null;index" json:"establishment"`
	Author        string            `gorm:"type:varchar(255);not null" json:"author"`
	AuthorRole    Role              `gorm:"type:varchar(20)" json:"author_role"`
	Type          TimelineEventType `gorm:"type:varchar(10);not null;default:'info'" json:"type"`
	Comment       string            `gorm:"type:text" json:"comment,omitempty"`
	Photo         string            `gorm:"type:text" json:"photo,omitempty"`
	Timestamp     time.Time         `gorm:"index" json:"timestamp"`
}

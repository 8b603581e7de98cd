package models

import "time"

type EquipmentStatus string

const (
	EquipmentStatusOperational EquipmentStatus = "OPERATIONAL"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusBroken      EquipmentStatus = "BROKEN"
)

type Equipment struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Location      string          `gorm:"type:varchar(255)" json:"location"`
	Status        EquipmentStatus `gorm:"type:varchar(20);not null;default:'OPERATIONAL'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Establishment string          `gorm:"type:varchar(255);not null;index" json:"establishment"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

package models

import "time"

type Sale struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	MenuItemID    uint64    `gorm:"not null;index" json:"menu_item_id"`
	QuantitySold  int64     `gorm:"not null" json:"quantity_sold"`
	Establishment string    `gorm:"type:varchar(255);not null;index" json:"establishment"`
	Date          time.Time `json:"date"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

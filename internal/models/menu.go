package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Category      string    `gorm:"type:varchar(255)" json:"category"`
	Establishment string    `gorm:"type:varchar(255);not null;index" json:"establishment"`
	CreatedAt     time.Time `json:"created_at"`

	Ingredients []Ingredient `gorm:"foreignKey:MenuItemID" json:"ingredients,omitempty"`
}

// Ingredient is one recipe row. InventoryItemID links it to stock for
// deduction; a nil link means the ingredient is informational only.
type Ingredient struct {
	ID              uint64          `gorm:"primarykey" json:"id"`
	MenuItemID      uint64          `gorm:"not null;index" json:"menu_item_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantity"`
	Unit            string          `gorm:"type:varchar(50)" json:"unit"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	InventoryItemID *uint64         `gorm:"index" json:"inventory_item_id,omitempty"`
}

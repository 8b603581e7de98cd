package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryStatus string

const (
	InventoryStatusOK  InventoryStatus = "OK"
	InventoryStatusLow InventoryStatus = "LOW"
	InventoryStatusOut InventoryStatus = "OUT"
)

// InventoryItem is a stock row. Quantity is the deduction ledger and may go
// negative; Status is a manually set signal and never changes as a side
// effect of deduction.
type InventoryItem struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Icon          string          `gorm:"type:varchar(255)" json:"icon"`
	Category      string          `gorm:"type:varchar(255);index" json:"category"`
	Quantity      decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0" json:"quantity"`
	Unit          string          `gorm:"type:varchar(50)" json:"unit"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"cost_per_unit"`
	Status        InventoryStatus `gorm:"type:varchar(10);not null;default:'OK'" json:"status"`
	LowComment    string          `gorm:"type:text" json:"low_comment,omitempty"`
	LastUpdated   time.Time       `json:"last_updated"`
	UpdatedBy     string          `gorm:"type:varchar(255)" json:"updated_by"`
	Establishment string          `gorm:"type:varchar(255);not null;index" json:"establishment"`
	CreatedAt     time.Time       `json:"created_at"`
}

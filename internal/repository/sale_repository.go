package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormSaleRepository is a GORM implementation of SaleRepository
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &GormSaleRepository{db: db}
}

// RecordSale inserts the sale row and applies every recipe deduction inside
// one transaction; any failure rolls the whole sale back. Each decrement is
// a single UPDATE with quantity = quantity - amount so concurrent sales
// against the same item cannot lose updates. The resulting quantity is not
// clamped at zero and the item status is left untouched.
func (r *GormSaleRepository) RecordSale(sale *models.Sale) ([]models.Ingredient, error) {
	var skipped []models.Ingredient

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		var ingredients []models.Ingredient
		if err := tx.Where("menu_item_id = ?", sale.MenuItemID).
			Find(&ingredients).Error; err != nil {
			return err
		}

		for _, ing := range ingredients {
			if ing.InventoryItemID == nil {
				continue
			}

			amount := ing.Quantity.Mul(decimal.NewFromInt(sale.QuantitySold))
			result := tx.Model(&models.InventoryItem{}).
				Where("id = ?", *ing.InventoryItemID).
				UpdateColumns(map[string]interface{}{
					"quantity":     gorm.Expr("quantity - ?", amount),
					"last_updated": sale.Date,
				})
			if result.Error != nil {
				return result.Error
			}

			// Linked inventory item no longer exists; the caller decides
			// how loudly to complain.
			if result.RowsAffected == 0 {
				skipped = append(skipped, ing)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return skipped, nil
}

// List returns sales, newest first
func (r *GormSaleRepository) List(establishment *string) ([]models.Sale, error) {
	query := r.db.Model(&models.Sale{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var sales []models.Sale
	if err := query.Order("date DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

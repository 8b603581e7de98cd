package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrInvalidSaleQuantity = errors.New("quantity sold must be positive")
)

// SaleService records sales and drives the recipe deduction.
type SaleService struct {
	saleRepo repository.SaleRepository
	menuRepo repository.MenuRepository
	log      zerolog.Logger
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo repository.SaleRepository, menuRepo repository.MenuRepository, log zerolog.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		menuRepo: menuRepo,
		log:      log,
	}
}

// RecordSaleInput represents one sale of a menu item.
type RecordSaleInput struct {
	MenuItemID   uint64
	QuantitySold int64
}

// RecordSale inserts the sale and deducts every linked ingredient's usage
// from inventory in one atomic transaction. A menu item without recipe rows
// sells fine with no inventory effect. Recipe rows whose linked inventory
// item has been deleted are skipped; the skip is logged, not fatal.
func (s *SaleService) RecordSale(p policy.Principal, input RecordSaleInput) (*models.Sale, error) {
	if input.QuantitySold <= 0 {
		return nil, ErrInvalidSaleQuantity
	}

	menuItem, err := s.menuRepo.FindByID(input.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}

	if !policy.SameEstablishment(p, menuItem.Establishment) {
		return nil, ErrWrongEstablishment
	}

	sale := &models.Sale{
		MenuItemID:    menuItem.ID,
		QuantitySold:  input.QuantitySold,
		Establishment: menuItem.Establishment,
		Date:          time.Now(),
	}

	skipped, err := s.saleRepo.RecordSale(sale)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	for _, ing := range skipped {
		s.log.Warn().
			Uint64("sale_id", sale.ID).
			Uint64("ingredient_id", ing.ID).
			Uint64("inventory_item_id", *ing.InventoryItemID).
			Msg("deduction skipped: linked inventory item no longer exists")
	}

	return sale, nil
}

// ListSales returns sales visible to the principal, newest first.
func (s *SaleService) ListSales(p policy.Principal) ([]models.Sale, error) {
	sales, err := s.saleRepo.List(scopeFilter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

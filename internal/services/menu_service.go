package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrMenuItemNotFound       = errors.New("menu item not found")
	ErrMenuItemNameRequired   = errors.New("menu item name is required")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrLinkedItemNotFound     = errors.New("linked inventory item not found")
)

// MenuService handles menu item and recipe business logic.
type MenuService struct {
	menuRepo      repository.MenuRepository
	inventoryRepo repository.InventoryRepository
	timelineRepo  repository.TimelineRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo repository.MenuRepository, inventoryRepo repository.InventoryRepository, timelineRepo repository.TimelineRepository) *MenuService {
	return &MenuService{
		menuRepo:      menuRepo,
		inventoryRepo: inventoryRepo,
		timelineRepo:  timelineRepo,
	}
}

// ListItems returns menu items visible to the principal, with recipes.
func (s *MenuService) ListItems(p policy.Principal) ([]models.MenuItem, error) {
	items, err := s.menuRepo.List(scopeFilter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetItem loads one menu item with its recipe, fenced to the principal's
// establishment.
func (s *MenuService) GetItem(p policy.Principal, id uint64) (*models.MenuItem, error) {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	if !policy.SameEstablishment(p, item.Establishment) {
		return nil, ErrWrongEstablishment
	}
	return item, nil
}

// CreateItemInput represents input for creating a menu item.
type CreateMenuItemInput struct {
	Name          string
	Category      string
	Establishment string
}

// CreateItem creates a menu item and records the audit event.
func (s *MenuService) CreateItem(p policy.Principal, input CreateMenuItemInput) (*models.MenuItem, error) {
	if input.Name == "" {
		return nil, ErrMenuItemNameRequired
	}

	item := &models.MenuItem{
		Name:          input.Name,
		Category:      input.Category,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.menuRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	event := newTimelineEvent(p, item.Establishment, models.TimelineTypeInfo,
		fmt.Sprintf("Menu Item Added: %s", item.Name))
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record menu event: %w", err)
	}

	return item, nil
}

// AddIngredientInput represents one recipe row.
type AddIngredientInput struct {
	Name            string
	Quantity        decimal.Decimal
	Unit            string
	Notes           string
	InventoryItemID *uint64
}

// AddIngredient appends a recipe row to a menu item. When the row links to
// an inventory item, the link target must exist at creation time.
func (s *MenuService) AddIngredient(p policy.Principal, menuItemID uint64, input AddIngredientInput) (*models.Ingredient, error) {
	if input.Name == "" {
		return nil, ErrIngredientNameRequired
	}

	if _, err := s.GetItem(p, menuItemID); err != nil {
		return nil, err
	}

	if input.InventoryItemID != nil {
		if _, err := s.inventoryRepo.FindByID(*input.InventoryItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLinkedItemNotFound
			}
			return nil, fmt.Errorf("failed to check inventory link: %w", err)
		}
	}

	ing := &models.Ingredient{
		MenuItemID:      menuItemID,
		Name:            input.Name,
		Quantity:        input.Quantity,
		Unit:            input.Unit,
		Notes:           input.Notes,
		InventoryItemID: input.InventoryItemID,
	}

	if err := s.menuRepo.AddIngredient(ing); err != nil {
		return nil, fmt.Errorf("failed to add ingredient: %w", err)
	}

	return ing, nil
}

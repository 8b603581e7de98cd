package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrItemNameRequired      = errors.New("item name is required")
	ErrInvalidItemStatus     = errors.New("invalid inventory status")
)

var validInventoryStatuses = map[models.InventoryStatus]bool{
	models.InventoryStatusOK:  true,
	models.InventoryStatusLow: true,
	models.InventoryStatusOut: true,
}

// InventoryService handles inventory business logic and its audit events.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	timelineRepo  repository.TimelineRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo repository.InventoryRepository, timelineRepo repository.TimelineRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		timelineRepo:  timelineRepo,
	}
}

// ListInput represents filters for listing inventory.
type ListInventoryInput struct {
	CategoryPrefix *string
	Status         *models.InventoryStatus
}

// ListItems returns inventory visible to the principal, name ascending.
func (s *InventoryService) ListItems(p policy.Principal, input ListInventoryInput) ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.List(repository.InventoryFilter{
		Establishment:  scopeFilter(p),
		CategoryPrefix: input.CategoryPrefix,
		Status:         input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// CreateItemInput represents input for creating an inventory item.
type CreateItemInput struct {
	Name          string
	Icon          string
	Category      string
	Quantity      decimal.Decimal
	Unit          string
	CostPerUnit   decimal.Decimal
	Status        models.InventoryStatus
	LowComment    string
	Establishment string
}

// CreateItem creates an inventory item and records the audit event.
func (s *InventoryService) CreateItem(p policy.Principal, input CreateItemInput) (*models.InventoryItem, error) {
	if input.Name == "" {
		return nil, ErrItemNameRequired
	}
	if input.Status == "" {
		input.Status = models.InventoryStatusOK
	}
	if !validInventoryStatuses[input.Status] {
		return nil, ErrInvalidItemStatus
	}

	item := &models.InventoryItem{
		Name:          input.Name,
		Icon:          input.Icon,
		Category:      input.Category,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		CostPerUnit:   input.CostPerUnit,
		Status:        input.Status,
		LowComment:    input.LowComment,
		LastUpdated:   time.Now(),
		UpdatedBy:     p.Name,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	event := newTimelineEvent(p, item.Establishment, models.TimelineTypeInfo,
		fmt.Sprintf("Added new item: %s", item.Name))
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record inventory event: %w", err)
	}

	return item, nil
}

// UpdateItemInput represents a partial inventory update.
type UpdateItemInput struct {
	Name        *string
	Icon        *string
	Category    *string
	Quantity    *decimal.Decimal
	Unit        *string
	CostPerUnit *decimal.Decimal
	Status      *models.InventoryStatus
	LowComment  *string
}

// UpdateItem merges the partial update and records a LOW/OUT audit event
// when the status transitions into one of those states.
func (s *InventoryService) UpdateItem(p policy.Principal, id uint64, input UpdateItemInput) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	if !policy.SameEstablishment(p, item.Establishment) {
		return nil, ErrWrongEstablishment
	}

	previousStatus := item.Status

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Icon != nil {
		item.Icon = *input.Icon
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.CostPerUnit != nil {
		item.CostPerUnit = *input.CostPerUnit
	}
	if input.Status != nil {
		if !validInventoryStatuses[*input.Status] {
			return nil, ErrInvalidItemStatus
		}
		item.Status = *input.Status
	}
	if input.LowComment != nil {
		item.LowComment = *input.LowComment
	}
	statusComment := item.LowComment
	if item.Status != models.InventoryStatusLow {
		// LowComment only accompanies a LOW status.
		if input.Status != nil && item.Status != previousStatus {
			item.LowComment = ""
		}
	}

	item.LastUpdated = time.Now()
	item.UpdatedBy = p.Name

	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	if item.Status != previousStatus {
		switch item.Status {
		case models.InventoryStatusLow:
			event := newTimelineEvent(p, item.Establishment, models.TimelineTypeWarning,
				fmt.Sprintf("%s marked LOW", item.Name))
			event.Comment = statusComment
			if err := s.timelineRepo.Append(event); err != nil {
				return nil, fmt.Errorf("failed to record inventory event: %w", err)
			}
		case models.InventoryStatusOut:
			event := newTimelineEvent(p, item.Establishment, models.TimelineTypeAlert,
				fmt.Sprintf("%s marked OUT", item.Name))
			event.Comment = statusComment
			if err := s.timelineRepo.Append(event); err != nil {
				return nil, fmt.Errorf("failed to record inventory event: %w", err)
			}
		}
	}

	return item, nil
}

// DeleteItem removes an inventory item; idempotent for missing ids, fenced
// to the principal's establishment otherwise.
func (s *InventoryService) DeleteItem(p policy.Principal, id uint64) error {
	item, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find inventory item: %w", err)
	}
	if !policy.SameEstablishment(p, item.Establishment) {
		return ErrWrongEstablishment
	}

	if err := s.inventoryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

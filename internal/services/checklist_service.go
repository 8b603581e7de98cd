package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrChecklistTextRequired = errors.New("checklist text is required")
	ErrInvalidListType       = errors.New("invalid checklist type")
)

var validChecklistTypes = map[models.ChecklistType]bool{
	models.ChecklistTypeOpening: true,
	models.ChecklistTypeShift:   true,
	models.ChecklistTypeClosing: true,
}

// ChecklistService handles checklist business logic and its audit events.
type ChecklistService struct {
	checklistRepo repository.ChecklistRepository
	timelineRepo  repository.TimelineRepository
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(checklistRepo repository.ChecklistRepository, timelineRepo repository.TimelineRepository) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		timelineRepo:  timelineRepo,
	}
}

// ListItems returns checklist items visible to the principal.
func (s *ChecklistService) ListItems(p policy.Principal, listType *models.ChecklistType) ([]models.ChecklistItem, error) {
	items, err := s.checklistRepo.List(repository.ChecklistFilter{
		Establishment: scopeFilter(p),
		ListType:      listType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	return items, nil
}

// CreateItemInput represents input for creating a checklist item.
type CreateChecklistItemInput struct {
	Text          string
	ListType      models.ChecklistType
	AssignedTo    string
	Notes         string
	Establishment string
}

// CreateItem creates a checklist item and records the audit event.
func (s *ChecklistService) CreateItem(p policy.Principal, input CreateChecklistItemInput) (*models.ChecklistItem, error) {
	if input.Text == "" {
		return nil, ErrChecklistTextRequired
	}
	if !validChecklistTypes[input.ListType] {
		return nil, ErrInvalidListType
	}

	item := &models.ChecklistItem{
		Text:          input.Text,
		ListType:      input.ListType,
		AssignedTo:    input.AssignedTo,
		Notes:         input.Notes,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.checklistRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	event := newTimelineEvent(p, item.Establishment, models.TimelineTypeInfo,
		fmt.Sprintf("New %s item: %s (Assigned to %s)", item.ListType, item.Text, item.AssignedTo))
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record checklist event: %w", err)
	}

	return item, nil
}

// UpdateChecklistItemInput represents a partial checklist update.
type UpdateChecklistItemInput struct {
	Text       *string
	Completed  *bool
	AssignedTo *string
	Notes      *string
}

// UpdateItem merges the partial update; completing an item appends the
// completion audit event.
func (s *ChecklistService) UpdateItem(p policy.Principal, id uint64, input UpdateChecklistItemInput) (*models.ChecklistItem, error) {
	item, err := s.checklistRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	if !policy.SameEstablishment(p, item.Establishment) {
		return nil, ErrWrongEstablishment
	}

	wasCompleted := item.Completed

	if input.Text != nil {
		item.Text = *input.Text
	}
	if input.AssignedTo != nil {
		item.AssignedTo = *input.AssignedTo
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
		if *input.Completed {
			now := time.Now()
			item.CompletedBy = p.Name
			item.CompletedAt = &now
		} else {
			item.CompletedBy = ""
			item.CompletedAt = nil
		}
	}

	if err := s.checklistRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	if item.Completed && !wasCompleted {
		event := newTimelineEvent(p, item.Establishment, models.TimelineTypeSuccess,
			fmt.Sprintf("%s Checklist: %s completed", item.ListType, item.Text))
		if err := s.timelineRepo.Append(event); err != nil {
			return nil, fmt.Errorf("failed to record checklist event: %w", err)
		}
	}

	return item, nil
}

// DeleteItem removes a checklist item; idempotent for missing ids, fenced
// to the principal's establishment otherwise.
func (s *ChecklistService) DeleteItem(p policy.Principal, id uint64) error {
	item, err := s.checklistRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find checklist item: %w", err)
	}
	if !policy.SameEstablishment(p, item.Establishment) {
		return ErrWrongEstablishment
	}

	if err := s.checklistRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}

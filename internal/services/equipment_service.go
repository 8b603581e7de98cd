package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrEquipmentNotFound      = errors.New("equipment not found")
	ErrEquipmentNameRequired  = errors.New("equipment name is required")
	ErrInvalidEquipmentStatus = errors.New("invalid equipment status")
)

var validEquipmentStatuses = map[models.EquipmentStatus]bool{
	models.EquipmentStatusOperational: true,
	models.EquipmentStatusMaintenance: true,
	models.EquipmentStatusBroken:      true,
}

// EquipmentService handles equipment business logic and its audit events.
type EquipmentService struct {
	equipmentRepo repository.EquipmentRepository
	timelineRepo  repository.TimelineRepository
}

// NewEquipmentService creates a new EquipmentService.
func NewEquipmentService(equipmentRepo repository.EquipmentRepository, timelineRepo repository.TimelineRepository) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		timelineRepo:  timelineRepo,
	}
}

// ListEquipment returns equipment visible to the principal.
func (s *EquipmentService) ListEquipment(p policy.Principal) ([]models.Equipment, error) {
	items, err := s.equipmentRepo.List(scopeFilter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

// CreateEquipmentInput represents input for registering equipment.
type CreateEquipmentInput struct {
	Name          string
	Location      string
	Status        models.EquipmentStatus
	Notes         string
	Establishment string
}

// CreateEquipment registers a piece of equipment.
func (s *EquipmentService) CreateEquipment(p policy.Principal, input CreateEquipmentInput) (*models.Equipment, error) {
	if input.Name == "" {
		return nil, ErrEquipmentNameRequired
	}
	if input.Status == "" {
		input.Status = models.EquipmentStatusOperational
	}
	if !validEquipmentStatuses[input.Status] {
		return nil, ErrInvalidEquipmentStatus
	}

	eq := &models.Equipment{
		Name:          input.Name,
		Location:      input.Location,
		Status:        input.Status,
		Notes:         input.Notes,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.equipmentRepo.Create(eq); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	return eq, nil
}

// UpdateEquipmentInput represents a partial equipment update.
type UpdateEquipmentInput struct {
	Name     *string
	Location *string
	Status   *models.EquipmentStatus
	Notes    *string
}

// UpdateEquipment merges the partial update. Status transitions append the
// matching audit event: BROKEN is an alert, MAINTENANCE a warning, and a
// recovery back to OPERATIONAL a success.
func (s *EquipmentService) UpdateEquipment(p policy.Principal, id uint64, input UpdateEquipmentInput) (*models.Equipment, error) {
	eq, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	if !policy.SameEstablishment(p, eq.Establishment) {
		return nil, ErrWrongEstablishment
	}

	previousStatus := eq.Status

	if input.Name != nil {
		eq.Name = *input.Name
	}
	if input.Location != nil {
		eq.Location = *input.Location
	}
	if input.Status != nil {
		if !validEquipmentStatuses[*input.Status] {
			return nil, ErrInvalidEquipmentStatus
		}
		eq.Status = *input.Status
	}
	if input.Notes != nil {
		eq.Notes = *input.Notes
	}

	if err := s.equipmentRepo.Update(eq); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}

	if eq.Status != previousStatus {
		var event *models.TimelineEvent
		switch eq.Status {
		case models.EquipmentStatusBroken:
			event = newTimelineEvent(p, eq.Establishment, models.TimelineTypeAlert,
				fmt.Sprintf("%s reported BROKEN", eq.Name))
		case models.EquipmentStatusMaintenance:
			event = newTimelineEvent(p, eq.Establishment, models.TimelineTypeWarning,
				fmt.Sprintf("%s needs attention", eq.Name))
		case models.EquipmentStatusOperational:
			event = newTimelineEvent(p, eq.Establishment, models.TimelineTypeSuccess,
				fmt.Sprintf("%s fixed/working", eq.Name))
		}
		if event != nil {
			if err := s.timelineRepo.Append(event); err != nil {
				return nil, fmt.Errorf("failed to record equipment event: %w", err)
			}
		}
	}

	return eq, nil
}

// DeleteEquipment removes an equipment record; idempotent for missing ids,
// fenced to the principal's establishment otherwise.
func (s *EquipmentService) DeleteEquipment(p policy.Principal, id uint64) error {
	eq, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find equipment: %w", err)
	}
	if !policy.SameEstablishment(p, eq.Establishment) {
		return ErrWrongEstablishment
	}

	if err := s.equipmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil
}

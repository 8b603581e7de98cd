package services

import (
	"fmt"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

// TimelineService exposes the audit log. Writes happen inside the services
// that trigger them; this service only reads.
type TimelineService struct {
	timelineRepo repository.TimelineRepository
}

// NewTimelineService creates a new TimelineService.
func NewTimelineService(timelineRepo repository.TimelineRepository) *TimelineService {
	return &TimelineService{
		timelineRepo: timelineRepo,
	}
}

// ListEvents returns a page of audit events visible to the principal,
// newest first.
func (s *TimelineService) ListEvents(p policy.Principal, limit, offset int) ([]models.TimelineEvent, error) {
	events, err := s.timelineRepo.List(scopeFilter(p), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events: %w", err)
	}
	return events, nil
}

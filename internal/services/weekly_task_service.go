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
	ErrWeeklyTaskNotFound     = errors.New("weekly task not found")
	ErrWeeklyTaskTextRequired = errors.New("task text is required")
)

// WeeklyTaskService handles weekly task business logic, including the
// append-only photo completion history.
type WeeklyTaskService struct {
	taskRepo     repository.WeeklyTaskRepository
	timelineRepo repository.TimelineRepository
}

// NewWeeklyTaskService creates a new WeeklyTaskService.
func NewWeeklyTaskService(taskRepo repository.WeeklyTaskRepository, timelineRepo repository.TimelineRepository) *WeeklyTaskService {
	return &WeeklyTaskService{
		taskRepo:     taskRepo,
		timelineRepo: timelineRepo,
	}
}

// ListTasks returns weekly tasks visible to the principal.
func (s *WeeklyTaskService) ListTasks(p policy.Principal) ([]models.WeeklyTask, error) {
	tasks, err := s.taskRepo.List(scopeFilter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a weekly task.
type CreateWeeklyTaskInput struct {
	Text          string
	AssignedTo    string
	Notes         string
	Establishment string
}

// CreateTask creates a weekly task and records the audit event.
func (s *WeeklyTaskService) CreateTask(p policy.Principal, input CreateWeeklyTaskInput) (*models.WeeklyTask, error) {
	if input.Text == "" {
		return nil, ErrWeeklyTaskTextRequired
	}

	task := &models.WeeklyTask{
		Text:          input.Text,
		AssignedTo:    input.AssignedTo,
		Notes:         input.Notes,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create weekly task: %w", err)
	}

	event := newTimelineEvent(p, task.Establishment, models.TimelineTypeInfo,
		fmt.Sprintf("New Weekly Task: %s (Assigned to %s)", task.Text, task.AssignedTo))
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record task event: %w", err)
	}

	return task, nil
}

// UpdateWeeklyTaskInput represents a partial weekly task update.
type UpdateWeeklyTaskInput struct {
	Text       *string
	AssignedTo *string
	Notes      *string
	Completed  *bool
}

// UpdateTask merges the partial update.
func (s *WeeklyTaskService) UpdateTask(p policy.Principal, id uint64, input UpdateWeeklyTaskInput) (*models.WeeklyTask, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	if !policy.SameEstablishment(p, task.Establishment) {
		return nil, ErrWrongEstablishment
	}

	if input.Text != nil {
		task.Text = *input.Text
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
		if !*input.Completed {
			task.CompletedAt = nil
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update weekly task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a weekly task; idempotent for missing ids, fenced to
// the principal's establishment otherwise.
func (s *WeeklyTaskService) DeleteTask(p policy.Principal, id uint64) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find weekly task: %w", err)
	}
	if !policy.SameEstablishment(p, task.Establishment) {
		return ErrWrongEstablishment
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete weekly task: %w", err)
	}
	return nil
}

// CompleteTask appends a photo completion to the task's history, flips the
// completed flag, and records the audit event with the photo attached.
func (s *WeeklyTaskService) CompleteTask(p policy.Principal, id uint64, photo string) (*models.WeeklyTask, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	if !policy.SameEstablishment(p, task.Establishment) {
		return nil, ErrWrongEstablishment
	}

	completion := &models.TaskCompletion{
		CompletedBy: p.Name,
		Photo:       photo,
		CompletedAt: time.Now(),
	}

	if err := s.taskRepo.AddCompletion(task, completion); err != nil {
		return nil, fmt.Errorf("failed to complete weekly task: %w", err)
	}

	event := newTimelineEvent(p, task.Establishment, models.TimelineTypeSuccess,
		fmt.Sprintf("Weekly task completed: %s by %s", task.Text, p.Name))
	event.Photo = photo
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record task event: %w", err)
	}

	return task, nil
}

// ListCompletions returns a task's completion history, newest first.
func (s *WeeklyTaskService) ListCompletions(p policy.Principal, id uint64) ([]models.TaskCompletion, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	if !policy.SameEstablishment(p, task.Establishment) {
		return nil, ErrWrongEstablishment
	}

	completions, err := s.taskRepo.ListCompletions(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}

func (s *WeeklyTaskService) findTask(id uint64) (*models.WeeklyTask, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeeklyTaskNotFound
		}
		return nil, fmt.Errorf("failed to find weekly task: %w", err)
	}
	return task, nil
}

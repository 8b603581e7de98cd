package repository

import (
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
)

// GormWeeklyTaskRepository is a GORM implementation of WeeklyTaskRepository
type GormWeeklyTaskRepository struct {
	db *gorm.DB
}

// NewWeeklyTaskRepository creates a new WeeklyTaskRepository
func NewWeeklyTaskRepository(db *gorm.DB) WeeklyTaskRepository {
	return &GormWeeklyTaskRepository{db: db}
}

// Create creates a new weekly task
func (r *GormWeeklyTaskRepository) Create(task *models.WeeklyTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a weekly task by ID
func (r *GormWeeklyTaskRepository) FindByID(id uint64) (*models.WeeklyTask, error) {
	var task models.WeeklyTask
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves weekly tasks in insertion order
func (r *GormWeeklyTaskRepository) List(establishment *string) ([]models.WeeklyTask, error) {
	query := r.db.Model(&models.WeeklyTask{})
	if establishment != nil {
		query = query.Where("establishment = ?", *establishment)
	}

	var tasks []models.WeeklyTask
	if err := query.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a weekly task
func (r *GormWeeklyTaskRepository) Update(task *models.WeeklyTask) error {
	return r.db.Save(task).Error
}

// Delete removes a weekly task; deleting a missing id is not an error
func (r *GormWeeklyTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.WeeklyTask{}, id).Error
}

// AddCompletion appends a completion row and marks the task completed in one
// transaction. The completion history is append-only.
func (r *GormWeeklyTaskRepository) AddCompletion(task *models.WeeklyTask, completion *models.TaskCompletion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		completion.TaskID = task.ID
		if err := tx.Create(completion).Error; err != nil {
			return err
		}

		task.Completed = true
		task.CompletedAt = &completion.CompletedAt
		return tx.Save(task).Error
	})
}

// ListCompletions returns a task's completion history, newest first
func (r *GormWeeklyTaskRepository) ListCompletions(taskID uint64) ([]models.TaskCompletion, error) {
	var completions []models.TaskCompletion
	if err := r.db.Where("task_id = ?", taskID).
		Order("completed_at DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

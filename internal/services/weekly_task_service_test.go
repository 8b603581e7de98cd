package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

type weeklyTaskTestEnv struct {
	db      *gorm.DB
	service *WeeklyTaskService
}

func setupWeeklyTaskTestEnv(t *testing.T) weeklyTaskTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.WeeklyTask{},
		&models.TaskCompletion{},
		&models.TimelineEvent{},
	)
	require.NoError(t, err)

	taskRepo := repository.NewWeeklyTaskRepository(db)
	timelineRepo := repository.NewTimelineRepository(db)
	service := NewWeeklyTaskService(taskRepo, timelineRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return weeklyTaskTestEnv{db: db, service: service}
}

func weeklyTaskPrincipal() policy.Principal {
	return policy.Principal{
		ID:            1,
		Name:          "Marco",
		Role:          models.RoleLead,
		Establishment: "Bison Den",
	}
}

func TestWeeklyTaskService_CreateTask(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	task, err := env.service.CreateTask(weeklyTaskPrincipal(), CreateWeeklyTaskInput{
		Text:       "Deep clean fryers",
		AssignedTo: "Dana",
	})
	require.NoError(t, err)
	require.False(t, task.Completed)
	require.Equal(t, "Bison Den", task.Establishment)

	var event models.TimelineEvent
	require.NoError(t, env.db.First(&event).Error)
	require.Equal(t, "New Weekly Task: Deep clean fryers (Assigned to Dana)", event.Text)
}

func TestWeeklyTaskService_CompleteTask(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	task, err := env.service.CreateTask(weeklyTaskPrincipal(), CreateWeeklyTaskInput{
		Text:       "Deep clean fryers",
		AssignedTo: "Dana",
	})
	require.NoError(t, err)

	completed, err := env.service.CompleteTask(weeklyTaskPrincipal(), task.ID, "photos/fryers.jpg")
	require.NoError(t, err)
	require.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)

	completions, err := env.service.ListCompletions(weeklyTaskPrincipal(), task.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	require.Equal(t, "Marco", completions[0].CompletedBy)
	require.Equal(t, "photos/fryers.jpg", completions[0].Photo)

	var event models.TimelineEvent
	require.NoError(t, env.db.Where("type = ?", models.TimelineTypeSuccess).First(&event).Error)
	require.Equal(t, "Weekly task completed: Deep clean fryers by Marco", event.Text)
	require.Equal(t, "photos/fryers.jpg", event.Photo)
}

func TestWeeklyTaskService_CompletionsAccumulate(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	task, err := env.service.CreateTask(weeklyTaskPrincipal(), CreateWeeklyTaskInput{
		Text: "Rotate stock",
	})
	require.NoError(t, err)

	// Completing an already completed task appends to the history rather
	// than replacing it.
	_, err = env.service.CompleteTask(weeklyTaskPrincipal(), task.ID, "photos/week1.jpg")
	require.NoError(t, err)
	_, err = env.service.CompleteTask(weeklyTaskPrincipal(), task.ID, "photos/week2.jpg")
	require.NoError(t, err)

	completions, err := env.service.ListCompletions(weeklyTaskPrincipal(), task.ID)
	require.NoError(t, err)
	require.Len(t, completions, 2)
}

func TestWeeklyTaskService_UpdateTaskReopen(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	task, err := env.service.CreateTask(weeklyTaskPrincipal(), CreateWeeklyTaskInput{
		Text: "Rotate stock",
	})
	require.NoError(t, err)

	_, err = env.service.CompleteTask(weeklyTaskPrincipal(), task.ID, "")
	require.NoError(t, err)

	reopened := false
	updated, err := env.service.UpdateTask(weeklyTaskPrincipal(), task.ID, UpdateWeeklyTaskInput{
		Completed: &reopened,
	})
	require.NoError(t, err)
	require.False(t, updated.Completed)
	require.Nil(t, updated.CompletedAt)

	// Reopening leaves the completion history intact.
	completions, err := env.service.ListCompletions(weeklyTaskPrincipal(), task.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
}

func TestWeeklyTaskService_OtherEstablishmentFenced(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	task, err := env.service.CreateTask(weeklyTaskPrincipal(), CreateWeeklyTaskInput{
		Text: "Rotate stock",
	})
	require.NoError(t, err)

	outsider := policy.Principal{
		ID:            7,
		Name:          "Quinn",
		Role:          models.RoleEmployee,
		Establishment: "Wolf Lodge",
	}

	done := true
	_, err = env.service.UpdateTask(outsider, task.ID, UpdateWeeklyTaskInput{
		Completed: &done,
	})
	require.ErrorIs(t, err, ErrWrongEstablishment)

	_, err = env.service.CompleteTask(outsider, task.ID, "photos/fake.jpg")
	require.ErrorIs(t, err, ErrWrongEstablishment)

	_, err = env.service.ListCompletions(outsider, task.ID)
	require.ErrorIs(t, err, ErrWrongEstablishment)

	err = env.service.DeleteTask(outsider, task.ID)
	require.ErrorIs(t, err, ErrWrongEstablishment)

	var still models.WeeklyTask
	require.NoError(t, env.db.First(&still, task.ID).Error)
	require.False(t, still.Completed)
}

func TestWeeklyTaskService_CompleteMissingTask(t *testing.T) {
	env := setupWeeklyTaskTestEnv(t)

	_, err := env.service.CompleteTask(weeklyTaskPrincipal(), 9999, "")
	require.ErrorIs(t, err, ErrWeeklyTaskNotFound)
}

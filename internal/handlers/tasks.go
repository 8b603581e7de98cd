package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
)

// WeeklyTaskHandler coordinates weekly task HTTP handlers.
type WeeklyTaskHandler struct {
	taskService *services.WeeklyTaskService
}

// NewWeeklyTaskHandler creates a new WeeklyTaskHandler.
func NewWeeklyTaskHandler(taskService *services.WeeklyTaskService) *WeeklyTaskHandler {
	return &WeeklyTaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns weekly tasks visible to the principal.
func (h *WeeklyTaskHandler) ListTasks(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(p)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a weekly task.
func (h *WeeklyTaskHandler) CreateTask(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Text          string `json:"text" binding:"required"`
		AssignedTo    string `json:"assigned_to"`
		Notes         string `json:"notes"`
		Establishment string `json:"establishment"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	task, err := h.taskService.CreateTask(p, services.CreateWeeklyTaskInput{
		Text:          req.Text,
		AssignedTo:    req.AssignedTo,
		Notes:         req.Notes,
		Establishment: req.Establishment,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask merges a partial task update.
func (h *WeeklyTaskHandler) UpdateTask(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Text       *string `json:"text"`
		AssignedTo *string `json:"assigned_to"`
		Notes      *string `json:"notes"`
		Completed  *bool   `json:"completed"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(p, id, services.UpdateWeeklyTaskInput{
		Text:       req.Text,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
		Completed:  req.Completed,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a weekly task; idempotent.
func (h *WeeklyTaskHandler) DeleteTask(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(p, id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteTask appends a photo completion to the task's history.
func (h *WeeklyTaskHandler) CompleteTask(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CompleteRequest struct {
		Photo string `json:"photo"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CompleteTask(p, id, req.Photo)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListCompletions returns a task's completion history, newest first.
func (h *WeeklyTaskHandler) ListCompletions(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	completions, err := h.taskService.ListCompletions(p, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completions": completions})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWeeklyTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrWeeklyTaskTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

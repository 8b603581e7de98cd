package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/services"
)

// ChecklistHandler coordinates checklist HTTP handlers.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// ListItems returns checklist items; ?type=opening narrows to one list.
func (h *ChecklistHandler) ListItems(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var listType *models.ChecklistType
	if raw := c.Query("type"); raw != "" {
		t := models.ChecklistType(raw)
		listType = &t
	}

	items, err := h.checklistService.ListItems(p, listType)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem creates a checklist item.
func (h *ChecklistHandler) CreateItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Text          string `json:"text" binding:"required"`
		ListType      string `json:"list_type" binding:"required,oneof=opening shift closing"`
		AssignedTo    string `json:"assigned_to"`
		Notes         string `json:"notes"`
		Establishment string `json:"establishment"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	item, err := h.checklistService.CreateItem(p, services.CreateChecklistItemInput{
		Text:          req.Text,
		ListType:      models.ChecklistType(req.ListType),
		AssignedTo:    req.AssignedTo,
		Notes:         req.Notes,
		Establishment: req.Establishment,
	})
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem merges a partial checklist update.
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateItemRequest struct {
		Text       *string `json:"text"`
		Completed  *bool   `json:"completed"`
		AssignedTo *string `json:"assigned_to"`
		Notes      *string `json:"notes"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.UpdateItem(p, id, services.UpdateChecklistItemInput{
		Text:       req.Text,
		Completed:  req.Completed,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a checklist item; idempotent.
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.checklistService.DeleteItem(p, id); err != nil {
		respondChecklistError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChecklistItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrChecklistTextRequired),
		errors.Is(err, services.ErrInvalidListType):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

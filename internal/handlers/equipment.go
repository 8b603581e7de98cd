package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/services"
)

// EquipmentHandler coordinates equipment HTTP handlers.
type EquipmentHandler struct {
	equipmentService *services.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(equipmentService *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
	}
}

// ListEquipment returns equipment visible to the principal.
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	items, err := h.equipmentService.ListEquipment(p)
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": items})
}

// CreateEquipment registers a piece of equipment.
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateEquipmentRequest struct {
		Name          string `json:"name" binding:"required"`
		Location      string `json:"location"`
		Status        string `json:"status"`
		Notes         string `json:"notes"`
		Establishment string `json:"establishment"`
	}

	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	eq, err := h.equipmentService.CreateEquipment(p, services.CreateEquipmentInput{
		Name:          req.Name,
		Location:      req.Location,
		Status:        models.EquipmentStatus(req.Status),
		Notes:         req.Notes,
		Establishment: req.Establishment,
	})
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, eq)
}

// UpdateEquipment merges a partial equipment update.
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateEquipmentRequest struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
		Status   *string `json:"status"`
		Notes    *string `json:"notes"`
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateEquipmentInput{
		Name:     req.Name,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		s := models.EquipmentStatus(*req.Status)
		input.Status = &s
	}

	eq, err := h.equipmentService.UpdateEquipment(p, id, input)
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, eq)
}

// DeleteEquipment removes an equipment record; idempotent.
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.equipmentService.DeleteEquipment(p, id); err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEquipmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEquipmentNameRequired),
		errors.Is(err, services.ErrInvalidEquipmentStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

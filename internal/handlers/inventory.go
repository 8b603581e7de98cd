package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/services"
)

// InventoryHandler coordinates inventory HTTP handlers.
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListItems returns inventory visible to the principal, name ascending.
// ?category=Food/Dairy narrows to that category subtree.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	input := services.ListInventoryInput{}
	if raw := c.Query("category"); raw != "" {
		input.CategoryPrefix = &raw
	}
	if raw := c.Query("status"); raw != "" {
		s := models.InventoryStatus(raw)
		input.Status = &s
	}

	items, err := h.inventoryService.ListItems(p, input)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem creates an inventory item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Name          string          `json:"name" binding:"required"`
		Icon          string          `json:"icon"`
		Category      string          `json:"category"`
		Quantity      decimal.Decimal `json:"quantity"`
		Unit          string          `json:"unit"`
		CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
		Status        string          `json:"status"`
		LowComment    string          `json:"low_comment"`
		Establishment string          `json:"establishment"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	item, err := h.inventoryService.CreateItem(p, services.CreateItemInput{
		Name:          req.Name,
		Icon:          req.Icon,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		CostPerUnit:   req.CostPerUnit,
		Status:        models.InventoryStatus(req.Status),
		LowComment:    req.LowComment,
		Establishment: req.Establishment,
	})
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem merges a partial inventory update.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateItemRequest struct {
		Name        *string          `json:"name"`
		Icon        *string          `json:"icon"`
		Category    *string          `json:"category"`
		Quantity    *decimal.Decimal `json:"quantity"`
		Unit        *string          `json:"unit"`
		CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
		Status      *string          `json:"status"`
		LowComment  *string          `json:"low_comment"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateItemInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		CostPerUnit: req.CostPerUnit,
		LowComment:  req.LowComment,
	}
	if req.Status != nil {
		s := models.InventoryStatus(*req.Status)
		input.Status = &s
	}

	item, err := h.inventoryService.UpdateItem(p, id, input)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an inventory item; deleting a missing id still
// answers 204.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(p, id); err != nil {
		respondInventoryError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInventoryItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrItemNameRequired),
		errors.Is(err, services.ErrInvalidItemStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
)

// MenuHandler coordinates menu item and recipe HTTP handlers.
type MenuHandler struct {
	menuService *services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// ListItems returns menu items with their recipes.
func (h *MenuHandler) ListItems(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	items, err := h.menuService.ListItems(p)
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem returns one menu item with its recipe.
func (h *MenuHandler) GetItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.menuService.GetItem(p, id)
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem creates a menu item.
func (h *MenuHandler) CreateItem(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Name          string `json:"name" binding:"required"`
		Category      string `json:"category"`
		Establishment string `json:"establishment"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	item, err := h.menuService.CreateItem(p, services.CreateMenuItemInput{
		Name:          req.Name,
		Category:      req.Category,
		Establishment: req.Establishment,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// AddIngredient appends a recipe row to a menu item.
func (h *MenuHandler) AddIngredient(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type AddIngredientRequest struct {
		Name            string          `json:"name" binding:"required"`
		Quantity        decimal.Decimal `json:"quantity" binding:"required"`
		Unit            string          `json:"unit"`
		Notes           string          `json:"notes"`
		InventoryItemID *uint64         `json:"inventory_item_id"`
	}

	var req AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	ing, err := h.menuService.AddIngredient(p, id, services.AddIngredientInput{
		Name:            req.Name,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Notes:           req.Notes,
		InventoryItemID: req.InventoryItemID,
	})
	if err != nil {
		respondMenuError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func respondMenuError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrLinkedItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMenuItemNameRequired),
		errors.Is(err, services.ErrIngredientNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

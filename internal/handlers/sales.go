package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
)

// SaleHandler coordinates sale recording HTTP handlers.
type SaleHandler struct {
	saleService *services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// ListSales returns sales visible to the principal, newest first.
func (h *SaleHandler) ListSales(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	sales, err := h.saleService.ListSales(p)
	if err != nil {
		respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// RecordSale records a sale and triggers the recipe deduction.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type RecordSaleRequest struct {
		MenuItemID   uint64 `json:"menu_item_id" binding:"required"`
		QuantitySold int64  `json:"quantity_sold" binding:"required,gt=0"`
	}

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	sale, err := h.saleService.RecordSale(p, services.RecordSaleInput{
		MenuItemID:   req.MenuItemID,
		QuantitySold: req.QuantitySold,
	})
	if err != nil {
		respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func respondSaleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMenuItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongEstablishment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidSaleQuantity):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

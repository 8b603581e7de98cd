package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
	"github.com/figu920/flowops/internal/utils"
)

// TimelineHandler exposes the audit log.
type TimelineHandler struct {
	timelineService *services.TimelineService
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(timelineService *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
	}
}

// ListEvents returns audit events visible to the principal, newest first.
// ?page= and ?limit= page through the log.
func (h *TimelineHandler) ListEvents(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	pagination := utils.GetPaginationParams(c)
	events, err := h.timelineService.ListEvents(p, pagination.Limit, pagination.Offset)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

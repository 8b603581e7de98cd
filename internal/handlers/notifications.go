package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
)

// NotificationHandler exposes the per-user notification mailbox.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the principal's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListForUser(p)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flags one of the principal's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.notificationService.MarkRead(p, id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotYourNotification):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

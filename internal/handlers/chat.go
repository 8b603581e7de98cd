package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/services"
)

// ChatHandler coordinates chat HTTP handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListMessages returns chat messages in insertion order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(p)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage writes a message into the principal's establishment chat.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type PostMessageRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	msg, err := h.chatService.PostMessage(p, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrMessageTextRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, msg)
}

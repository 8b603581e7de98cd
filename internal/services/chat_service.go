package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrMessageTextRequired = errors.New("message text is required")
)

// ChatService handles the establishment chat.
type ChatService struct {
	chatRepo repository.ChatRepository
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
	}
}

// ListMessages returns messages visible to the principal in insertion order.
func (s *ChatService) ListMessages(p policy.Principal) ([]models.ChatMessage, error) {
	messages, err := s.chatRepo.List(scopeFilter(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// PostMessage writes a message into the principal's establishment chat.
func (s *ChatService) PostMessage(p policy.Principal, text string) (*models.ChatMessage, error) {
	if text == "" {
		return nil, ErrMessageTextRequired
	}

	msg := &models.ChatMessage{
		Text:          text,
		Sender:        p.Name,
		SenderRole:    p.Role,
		Establishment: p.Establishment,
		Type:          "message",
		Timestamp:     time.Now(),
	}

	if err := s.chatRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	return msg, nil
}

package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotYourNotification  = errors.New("notification belongs to another user")
)

// NotificationService is the read side of the notification mailbox. Writes
// come from the workflows that trigger them.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// ListForUser returns the principal's notifications, newest first.
func (s *NotificationService) ListForUser(p policy.Principal) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one of the principal's own notifications as read.
func (s *NotificationService) MarkRead(p policy.Principal, id uint64) error {
	n, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}

	if n.RecipientID != p.ID {
		return ErrNotYourNotification
	}

	if err := s.notificationRepo.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

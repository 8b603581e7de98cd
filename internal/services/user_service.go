package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/figu920/flowops/internal/constants"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
	"github.com/figu920/flowops/internal/repository"
)

var (
	ErrApprovalNotAllowed   = errors.New("you may not approve or reject users of this role")
	ErrWrongEstablishment   = errors.New("target belongs to a different establishment")
	ErrUserNotPending       = errors.New("user is not pending approval")
	ErrUserNotActive        = errors.New("user is not active")
	ErrInvalidRole          = errors.New("invalid role")
	ErrNotAllowedToManage   = errors.New("you may not manage users")
)

var validRoles = map[models.Role]bool{
	models.RoleEmployee:   true,
	models.RoleLead:       true,
	models.RoleSupervisor: true,
	models.RoleManager:    true,
	models.RoleAdmin:      true,
}

// UserService handles the approval workflow and user administration.
type UserService struct {
	userRepo         repository.UserRepository
	timelineRepo     repository.TimelineRepository
	notificationRepo repository.NotificationRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, timelineRepo repository.TimelineRepository, notificationRepo repository.NotificationRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		timelineRepo:     timelineRepo,
		notificationRepo: notificationRepo,
	}
}

// ListUsers returns users visible to the principal. Establishment fencing
// applies to everyone without global scope. When listing pending users, a
// non-system-admin only sees the roles they are allowed to act on.
func (s *UserService) ListUsers(p policy.Principal, status *models.UserStatus) ([]models.User, error) {
	filter := repository.UserFilter{
		Establishment: scopeFilter(p),
		Status:        status,
	}

	if status != nil && *status == models.UserStatusPending && !policy.IsSystemAdmin(p) {
		filter.Roles = policy.ApprovalHierarchy[p.Role]
		if len(filter.Roles) == 0 {
			return []models.User{}, nil
		}
	}

	users, err := s.userRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUserInput represents a direct account creation by a manager.
type CreateUserInput struct {
	Name          string
	Email         string
	Username      string
	Password      string
	Role          models.Role
	Establishment string
}

// CreateUser directly creates an active account; only user managers may do
// this.
func (s *UserService) CreateUser(p policy.Principal, input CreateUserInput) (*models.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, ErrNotAllowedToManage
	}
	if !validRoles[input.Role] {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:          input.Name,
		Email:         input.Email,
		Username:      input.Username,
		PasswordHash:  string(hashedPassword),
		Role:          input.Role,
		Status:        models.UserStatusActive,
		Establishment: resolveEstablishment(p, input.Establishment),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Approve transitions a pending user to active, assigning the role chosen by
// the approver. Guards: approval hierarchy and establishment fencing.
func (s *UserService) Approve(p policy.Principal, targetID uint64, role models.Role) (*models.User, error) {
	target, err := s.findTarget(targetID)
	if err != nil {
		return nil, err
	}

	if target.Status != models.UserStatusPending {
		return nil, ErrUserNotPending
	}
	if !policy.CanApprove(p, target.Role) {
		return nil, ErrApprovalNotAllowed
	}
	if !policy.SameEstablishment(p, target.Establishment) {
		return nil, ErrWrongEstablishment
	}
	if !validRoles[role] {
		return nil, ErrInvalidRole
	}

	target.Status = models.UserStatusActive
	target.Role = role
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}

	event := newTimelineEvent(p, target.Establishment, models.TimelineTypeSuccess,
		fmt.Sprintf("Approved %s as %s", target.Name, target.Role))
	if err := s.timelineRepo.Append(event); err != nil {
		return nil, fmt.Errorf("failed to record approval: %w", err)
	}

	s.notify(target.ID, "account_approved", "Account approved",
		fmt.Sprintf("Your account was approved as %s by %s", target.Role, p.Name), p.ID)

	return target, nil
}

// Reject transitions a pending user to removed. Removed is terminal.
func (s *UserService) Reject(p policy.Principal, targetID uint64) (*models.User, error) {
	target, err := s.findTarget(targetID)
	if err != nil {
		return nil, err
	}

	if target.Status != models.UserStatusPending {
		return nil, ErrUserNotPending
	}
	if !policy.CanApprove(p, target.Role) {
		return nil, ErrApprovalNotAllowed
	}
	if !policy.SameEstablishment(p, target.Establishment) {
		return nil, ErrWrongEstablishment
	}

	target.Status = models.UserStatusRemoved
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to reject user: %w", err)
	}

	s.notify(target.ID, "account_rejected", "Account rejected",
		fmt.Sprintf("Your registration was rejected by %s", p.Name), p.ID)

	return target, nil
}

// Deactivate transitions an active user to removed; user managers only.
func (s *UserService) Deactivate(p policy.Principal, targetID uint64) (*models.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, ErrNotAllowedToManage
	}

	target, err := s.findTarget(targetID)
	if err != nil {
		return nil, err
	}

	if target.Status != models.UserStatusActive {
		return nil, ErrUserNotActive
	}
	if !policy.SameEstablishment(p, target.Establishment) {
		return nil, ErrWrongEstablishment
	}

	target.Status = models.UserStatusRemoved
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.notify(target.ID, "account_deactivated", "Account deactivated",
		fmt.Sprintf("Your account was deactivated by %s", p.Name), p.ID)

	return target, nil
}

func (s *UserService) findTarget(id uint64) (*models.User, error) {
	target, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return target, nil
}

// notify drops a row into the recipient's mailbox. Delivery beyond that is
// out of scope; a failed insert does not fail the workflow action.
func (s *UserService) notify(recipientID uint64, typ, title, message string, relatedUserID uint64) {
	related := relatedUserID
	_ = s.notificationRepo.Create(&models.Notification{
		RecipientID:   recipientID,
		Type:          typ,
		Title:         title,
		Message:       message,
		RelatedUserID: &related,
	})
}

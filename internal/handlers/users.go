package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/figu920/flowops/internal/dto"
	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/services"
)

// UserHandler coordinates user administration and the approval workflow.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users visible to the principal; ?status=pending narrows
// to the approval queue.
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var status *models.UserStatus
	if raw := c.Query("status"); raw != "" {
		s := models.UserStatus(raw)
		status = &s
	}

	users, err := h.userService.ListUsers(p, status)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// CreateUser directly creates an active account (managers only).
func (h *UserHandler) CreateUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateUserRequest struct {
		Name          string `json:"name" binding:"required"`
		Email         string `json:"email" binding:"required,email"`
		Username      string `json:"username" binding:"required,min=3,max=50"`
		Password      string `json:"password" binding:"required"`
		Role          string `json:"role" binding:"required"`
		Establishment string `json:"establishment"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	user, err := h.userService.CreateUser(p, services.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		Role:          models.Role(req.Role),
		Establishment: req.Establishment,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ApproveUser activates a pending user with the role chosen by the approver.
func (h *UserHandler) ApproveUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ApproveRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	user, err := h.userService.Approve(p, id, models.Role(req.Role))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// RejectUser removes a pending user.
func (h *UserHandler) RejectUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Reject(p, id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeactivateUser removes an active user (managers only).
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(p, id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrApprovalNotAllowed),
		errors.Is(err, services.ErrWrongEstablishment),
		errors.Is(err, services.ErrNotAllowedToManage):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotPending),
		errors.Is(err, services.ErrUserNotActive):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

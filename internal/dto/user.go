package dto

import (
	"time"

	"github.com/figu920/flowops/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Username      string            `json:"username"`
	Role          models.Role       `json:"role"`
	Status        models.UserStatus `json:"status"`
	Establishment string            `json:"establishment"`
	IsSystemAdmin bool              `json:"is_system_admin"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Username:      user.Username,
		Role:          user.Role,
		Status:        user.Status,
		Establishment: user.Establishment,
		IsSystemAdmin: user.IsSystemAdmin,
		CreatedAt:     user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

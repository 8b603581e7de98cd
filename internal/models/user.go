package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleLead       Role = "lead"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusRemoved UserStatus = "removed"
)

// User is an account scoped to one establishment. IsSystemAdmin is a flag
// independent of Role; only the flag grants cross-establishment access.
type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role          Role           `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Status        UserStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Establishment string         `gorm:"type:varchar(255);not null;index" json:"establishment"`
	IsSystemAdmin bool           `gorm:"not null;default:false" json:"is_system_admin"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

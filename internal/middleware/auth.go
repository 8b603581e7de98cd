package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/figu920/flowops/internal/constants"
	"github.com/figu920/flowops/internal/database"
	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
)

// RequireAuth checks the session, loads the user, and stores the request
// principal in the context. A session pointing at a non-active account is
// treated as unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)

		userID, ok := toUserID(raw)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if user.Status != models.UserStatusActive {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyPrincipal, policy.FromUser(&user))
		c.Next()
	}
}

// RequireUserManager gates user administration endpoints.
func RequireUserManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !policy.CanManageUsers(p) {
			apierrors.Forbidden(c, "Only managers can administer users")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal retrieves the request principal from the context.
func GetPrincipal(c *gin.Context) (policy.Principal, bool) {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return policy.Principal{}, false
	}

	p, ok := v.(policy.Principal)
	return p, ok
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}

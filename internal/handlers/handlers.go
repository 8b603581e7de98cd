package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/figu920/flowops/internal/errors"
	"github.com/figu920/flowops/internal/middleware"
	"github.com/figu920/flowops/internal/policy"
)

// requirePrincipal pulls the request principal set by RequireAuth; a missing
// principal means the middleware did not run, so answer 401.
func requirePrincipal(c *gin.Context) (policy.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return policy.Principal{}, false
	}
	return p, true
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

package constants

// Session and context keys
const (
	SessionCookieName   = "flowops_session"
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
)

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

package services

import (
	"time"

	"github.com/figu920/flowops/internal/models"
	"github.com/figu920/flowops/internal/policy"
)

// newTimelineEvent builds an audit event authored by the acting principal.
func newTimelineEvent(p policy.Principal, establishment string, typ models.TimelineEventType, text string) *models.TimelineEvent {
	return &models.TimelineEvent{
		Text:          text,
		Establishment: establishment,
		Author:        p.Name,
		AuthorRole:    p.Role,
		Type:          typ,
		Timestamp:     time.Now(),
	}
}

// resolveEstablishment decides which establishment a write lands in.
// Globally scoped principals may target any establishment; everyone else
// always writes into their own, whatever the payload says.
func resolveEstablishment(p policy.Principal, requested string) string {
	if policy.VisibilityScope(p) == policy.ScopeGlobal && requested != "" {
		return requested
	}
	return p.Establishment
}

// scopeFilter returns the establishment to fence list queries with, or nil
// for globally scoped principals.
func scopeFilter(p policy.Principal) *string {
	if policy.VisibilityScope(p) == policy.ScopeGlobal {
		return nil
	}
	est := p.Establishment
	return &est
}

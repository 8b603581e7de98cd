package policy

import "github.com/figu920/flowops/internal/models"

// Principal is the per-request identity the core trusts verbatim. Role and
// IsSystemAdmin are independent axes: the flag grants cross-establishment
// access, the role never does on its own.
type Principal struct {
	ID            uint64
	Name          string
	Role          models.Role
	Establishment string
	IsSystemAdmin bool
}

type Scope string

const (
	ScopeGlobal        Scope = "global"
	ScopeEstablishment Scope = "establishment"
)

// IsSystemAdmin reports whether the principal has the system admin flag.
func IsSystemAdmin(p Principal) bool {
	return p.IsSystemAdmin
}

// CanManageUsers reports whether the principal may create, deactivate, and
// administer user accounts.
func CanManageUsers(p Principal) bool {
	return p.Role == models.RoleManager || IsSystemAdmin(p)
}

// VisibilityScope resolves how list queries are fenced for the principal.
func VisibilityScope(p Principal) Scope {
	if IsSystemAdmin(p) || p.Role == models.RoleAdmin {
		return ScopeGlobal
	}
	return ScopeEstablishment
}

// ApprovalHierarchy maps an approver role to the applicant roles it may
// approve or reject.
var ApprovalHierarchy = map[models.Role][]models.Role{
	models.RoleAdmin:      {models.RoleManager},
	models.RoleManager:    {models.RoleSupervisor},
	models.RoleSupervisor: {models.RoleLead},
	models.RoleLead:       {models.RoleEmployee},
	models.RoleEmployee:   {},
}

// CanApprove reports whether the actor's role may act on a pending user of
// the given role.
func CanApprove(actor Principal, targetRole models.Role) bool {
	for _, r := range ApprovalHierarchy[actor.Role] {
		if r == targetRole {
			return true
		}
	}
	return false
}

// SameEstablishment enforces the tenant fence for approval actions: global
// principals pass, everyone else must match the target's establishment.
func SameEstablishment(actor Principal, establishment string) bool {
	if VisibilityScope(actor) == ScopeGlobal {
		return true
	}
	return actor.Establishment == establishment
}

// FromUser builds the request principal from a loaded user row.
func FromUser(u *models.User) Principal {
	return Principal{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		Establishment: u.Establishment,
		IsSystemAdmin: u.IsSystemAdmin,
	}
}

package auth

import (
	"context"
)

// Role is a coarse user role carried in the JWT
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleBuyer     Role = "buyer"
	RoleApprover  Role = "approver"
	RoleRequester Role = "requester"
	RoleViewer    Role = "viewer"
)

// Capability actions and resources checked by service entry points
const (
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionApprove = "approve"

	ResourceProcurement = "procurement"
	ResourceMasterData  = "masterdata"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Roles       []Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an admin
func (u *UserContext) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// capability is one action/resource pair
type capability struct {
	action   string
	resource string
}

// roleCapabilities maps each role to the capabilities it grants.
var roleCapabilities = map[Role][]capability{
	RoleBuyer: {
		{ActionRead, ResourceProcurement},
		{ActionWrite, ResourceProcurement},
		{ActionRead, ResourceMasterData},
	},
	RoleApprover: {
		{ActionRead, ResourceProcurement},
		{ActionApprove, ResourceProcurement},
		{ActionRead, ResourceMasterData},
	},
	RoleRequester: {
		{ActionRead, ResourceProcurement},
		{ActionWrite, ResourceProcurement},
		{ActionRead, ResourceMasterData},
	},
	RoleViewer: {
		{ActionRead, ResourceProcurement},
		{ActionRead, ResourceMasterData},
	},
}

// Can checks whether the user may perform action on resource. Admins can do
// everything; other roles consult the capability table.
func (u *UserContext) Can(action, resource string) bool {
	if u.IsAdmin() {
		return true
	}
	for _, role := range u.Roles {
		for _, c := range roleCapabilities[role] {
			if c.action == action && c.resource == resource {
				return true
			}
		}
	}
	return false
}

// Can checks the capability of the user carried by ctx. Missing user
// context always denies.
func Can(ctx context.Context, action, resource string) bool {
	user, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return user.Can(action, resource)
}

// RolesAsStrings returns roles as a slice of strings
func (u *UserContext) RolesAsStrings() []string {
	result := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		result[i] = string(role)
	}
	return result
}

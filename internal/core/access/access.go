// Package access maps (role, permission) pairs to allow/deny decisions.
//
// The role → permission table is built once at construction and is immutable
// afterwards, so Decide is safe for unlimited concurrent use with no locks.
package access

import "github.com/greencode/platform/internal/core/domain"

// Permission identifies an operation as "<resource>:<action>".
type Permission string

const (
	ProjectRead      Permission = "project:read"
	ProjectCreate    Permission = "project:create"
	ProjectUpdateOwn Permission = "project:update-own"
	ProjectDeleteOwn Permission = "project:delete-own"
	ProjectUpdateAny Permission = "project:update-any"
	ProjectDeleteAny Permission = "project:delete-any"

	IdentityReadAny   Permission = "identity:read-any"
	IdentityUpdateAny Permission = "identity:update-any"
	IdentityDeleteAny Permission = "identity:delete-any"
)

// Decision is the outcome of an access check. Deny is a normal value, not an
// error, and carries no detail about why.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// grants lists the permissions each role adds on top of the roles it
// inherits. Inheritance is flattened at Engine construction, not per call.
var grants = map[domain.Role][]Permission{
	domain.RoleUser: {
		ProjectRead,
		ProjectCreate,
		ProjectUpdateOwn,
		ProjectDeleteOwn,
	},
	domain.RoleModerator: {
		ProjectUpdateAny,
		ProjectDeleteAny,
	},
	domain.RoleAdmin: {
		IdentityReadAny,
		IdentityUpdateAny,
		IdentityDeleteAny,
	},
}

// inherits maps each role to the role it extends.
var inherits = map[domain.Role]domain.Role{
	domain.RoleModerator: domain.RoleUser,
	domain.RoleAdmin:     domain.RoleModerator,
}

// Engine answers role-level permission questions from a static table.
// Instance-level ownership is the caller's concern.
type Engine struct {
	permitted map[domain.Role]map[Permission]struct{}
}

// NewEngine builds the flattened role → permission table.
func NewEngine() *Engine {
	permitted := make(map[domain.Role]map[Permission]struct{}, len(grants))
	for role := range grants {
		set := make(map[Permission]struct{})
		for r := role; r != ""; r = inherits[r] {
			for _, p := range grants[r] {
				set[p] = struct{}{}
			}
		}
		permitted[role] = set
	}
	return &Engine{permitted: permitted}
}

// Decide returns Allow when role holds the permission. Unknown roles and
// unknown permissions both deny.
func (e *Engine) Decide(role domain.Role, p Permission) Decision {
	if _, ok := e.permitted[role][p]; ok {
		return Allow
	}
	return Deny
}

package session

import (
	"net/url"
	"strconv"
)

// Role identifies the ownership slice a user operates on.
type Role string

const (
	// RoleAdmin sees and exports records across every supervisor.
	RoleAdmin Role = "admin"
	// RoleSupervisor sees records scoped to their own id.
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether the role is one the backend recognizes.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// Session carries the acting user's identity and bearer token. It is passed
// explicitly into every client and controller so the auth dependency of each
// operation is visible at its call site.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// Authenticated reports whether the session holds a usable bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the session may request cross-supervisor scopes.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ExportScope returns the role-derived scope parameters attached to export
// requests: admins ask for every supervisor's records, supervisors only for
// their own. The two parameters are mutually exclusive.
func (s Session) ExportScope() url.Values {
	scope := url.Values{}
	if s.IsAdmin() {
		scope.Set("all_supervisors", "true")
		return scope
	}
	scope.Set("supervisorId", strconv.Itoa(s.UserID))
	return scope
}

package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/dairydesk/internal/session"
)

func TestAuthenticated(t *testing.T) {
	assert.False(t, session.Session{}.Authenticated())
	assert.False(t, session.Session{Username: "ami"}.Authenticated())
	assert.True(t, session.Session{Token: "abc"}.Authenticated())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, session.RoleAdmin.Valid())
	assert.True(t, session.RoleSupervisor.Valid())
	assert.False(t, session.Role("manager").Valid())
	assert.False(t, session.Role("").Valid())
}

func TestExportScopeAdmin(t *testing.T) {
	s := session.Session{UserID: 1, Role: session.RoleAdmin, Token: "t"}

	scope := s.ExportScope()

	assert.Equal(t, "true", scope.Get("all_supervisors"))
	assert.Empty(t, scope.Get("supervisorId"))
	assert.Len(t, scope, 1, "exactly one scope parameter per role")
}

func TestExportScopeSupervisor(t *testing.T) {
	s := session.Session{UserID: 12, Role: session.RoleSupervisor, Token: "t"}

	scope := s.ExportScope()

	assert.Equal(t, "12", scope.Get("supervisorId"))
	assert.Empty(t, scope.Get("all_supervisors"))
	assert.Len(t, scope, 1)
}

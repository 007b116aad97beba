package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("MODERATOR").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid(), "role tags are case-sensitive")
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &Principal{UserID: "u1", Subject: "alice", Roles: []Role{RoleUser}}

	assert.True(t, p.HasRole(RoleUser))
	assert.False(t, p.HasRole(RoleAdmin))
	assert.False(t, p.IsAdmin())

	var absent *Principal
	assert.False(t, absent.HasRole(RoleUser))
	assert.False(t, absent.IsAdmin())
}

func TestPrincipal_IsAdmin(t *testing.T) {
	p := &Principal{UserID: "u2", Subject: "admin", Roles: []Role{RoleUser, RoleAdmin}}
	assert.True(t, p.IsAdmin())
}

// Package auth contains domain-level types for authentication and
// authorization. It is pure and free of framework/adapter concerns.
package auth

// Role represents an application's authorization role.
// Keep string form for easy persistence and token-free transport.
// Valid values are defined as constants below; the set is closed and
// unknown tags are rejected at token issuance, not at verification.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is part of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Principal is the authenticated identity and authority attached to a
// request. It is built from a freshly loaded user record, never from token
// claims, so authority is always current. Immutable once published;
// lifetime is one request.
type Principal struct {
	// UserID is the stable record identifier, used for ownership checks.
	UserID string
	// Subject is the unique username the token was issued for.
	Subject string
	// Roles is the principal's current role set.
	Roles []Role
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p *Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }

package auth

import "context"

// Rule is an explicit authorization policy value evaluated before a
// handler's business logic runs. A nil or absent principal can only be
// denied; rules never distinguish "no principal" from "wrong principal"
// in their outcome.
type Rule interface {
	// Allows reports whether the principal satisfies the rule. The error
	// return is for owner-resolution failures only; a Deny is (false, nil).
	Allows(ctx context.Context, p *Principal) (bool, error)
}

// RoleRule allows any principal whose role set intersects Roles.
type RoleRule struct {
	Roles []Role
}

// Allows implements Rule.
func (r RoleRule) Allows(_ context.Context, p *Principal) (bool, error) {
	if p == nil {
		return false, nil
	}
	for _, role := range r.Roles {
		if p.HasRole(role) {
			return true, nil
		}
	}
	return false, nil
}

// OwnershipRule allows the principal that owns the targeted resource, or
// any ADMIN (the admin override is universal across all ownership rules).
// OwnerID resolves the resource's owner at evaluation time.
type OwnershipRule struct {
	// ResourceID identifies the resource being acted on.
	ResourceID string
	// OwnerID resolves a resource ID to its owner's user ID.
	OwnerID func(ctx context.Context, resourceID string) (string, error)
}

// Allows implements Rule.
func (r OwnershipRule) Allows(ctx context.Context, p *Principal) (bool, error) {
	if p == nil {
		return false, nil
	}
	if p.IsAdmin() {
		return true, nil
	}
	if r.OwnerID == nil {
		return false, nil
	}
	ownerID, err := r.OwnerID(ctx, r.ResourceID)
	if err != nil {
		return false, err
	}
	return ownerID != "" && ownerID == p.UserID, nil
}

// SelfRule allows a principal acting on its own user record, or any ADMIN.
// It is the degenerate ownership rule where the resource is the user itself.
type SelfRule struct {
	UserID string
}

// Allows implements Rule.
func (r SelfRule) Allows(_ context.Context, p *Principal) (bool, error) {
	if p == nil {
		return false, nil
	}
	if p.IsAdmin() {
		return true, nil
	}
	return r.UserID != "" && r.UserID == p.UserID, nil
}

// anyOf composes rules with logical OR.
type anyOf []Rule

// AnyOf returns a rule that allows when any sub-rule allows.
func AnyOf(rules ...Rule) Rule { return anyOf(rules) }

// Allows implements Rule.
func (rules anyOf) Allows(ctx context.Context, p *Principal) (bool, error) {
	for _, rule := range rules {
		ok, err := rule.Allows(ctx, p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Check evaluates a rule against the principal published for the current
// request (nil when the request is unauthenticated). Deny short-circuits
// the caller: business logic must not run after a false result.
func Check(ctx context.Context, p *Principal, rule Rule) (bool, error) {
	if rule == nil {
		return false, nil
	}
	return rule.Allows(ctx, p)
}

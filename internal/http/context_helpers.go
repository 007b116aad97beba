package httpx

import (
	"context"

	domainauth "github.com/socialgrid/socialgrid/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type principalKey struct{}

// SetPrincipalInContext returns a child context that carries the given
// principal. If a principal is already present it is kept; authentication
// never overwrites an identity established earlier in the chain. A nil
// principal returns the original ctx unchanged.
func SetPrincipalInContext(ctx context.Context, p *domainauth.Principal) context.Context {
	if p == nil {
		return ctx
	}
	if _, ok := GetPrincipalFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext returns the principal from context and a boolean indicating presence.
func GetPrincipalFromContext(ctx context.Context) (*domainauth.Principal, bool) {
	if p, ok := ctx.Value(principalKey{}).(*domainauth.Principal); ok && p != nil {
		return p, true
	}
	return nil, false
}

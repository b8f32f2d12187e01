package service

import (
	"context"

	"pookadai/models"
)

type (
	roleKey    struct{}
	sessionKey struct{}
)

// WithRole returns a context carrying the caller's role, set by the HTTP
// authentication middleware
func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// WithSession returns a context carrying the shopper session id
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext returns the shopper session id, or "" when there is none
func SessionFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionKey{}).(string)
	return sessionID
}

// ContextIdentity reads the role stored by WithRole. Callers without one are customers.
type ContextIdentity struct{}

var _ IdentityProvider = ContextIdentity{}

func (ContextIdentity) CurrentRole(ctx context.Context) (models.Role, error) {
	if role, ok := ctx.Value(roleKey{}).(models.Role); ok && role != "" {
		return role, nil
	}
	return models.RoleCustomer, nil
}

// requireOwner fails with UNAUTHORIZED unless the caller is the shop owner
func requireOwner(ctx context.Context, identity IdentityProvider, action string) error {
	role, err := identity.CurrentRole(ctx)
	if err != nil {
		return models.InternalError("identity lookup failed", err)
	}
	if role != models.RoleOwner {
		return models.UnauthorizedError("only the owner may %s", action)
	}
	return nil
}

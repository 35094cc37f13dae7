package auth

import (
	"context"
	"errors"
)

type contextKey string

const identityKey = contextKey("identity")

// Identity is the logged-in user as carried through a request context:
// id, username and email, nothing more.
type Identity struct {
	ID       uint
	Username string
	Email    string
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// GetUserIDFromContext returns the user ID of the request's identity.
// Storage implementations use it for ownership checks.
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return id.ID, nil
}

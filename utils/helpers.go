package utils

import (
	"context"
	"net/http"
)

// Identity is the caller accepted by the auth gate.
type Identity struct {
	ID    string
	Email string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity returns the identity the auth gate attached to the request.
func GetIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	if !ok || id.ID == "" {
		return Identity{}, false
	}
	return id, true
}

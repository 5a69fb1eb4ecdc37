// Package identity talks to the system that owns user accounts.
package identity

import (
	"context"
	"errors"
)

var ErrAccountNotFound = errors.New("account not found")

// Directory resolves and removes accounts owned by the identity provider.
type Directory interface {
	LookupEmail(ctx context.Context, userID string) (string, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// ABOUTME: Principal propagation through request context
// ABOUTME: Provides WithPrincipal/FromContext for handlers downstream of the auth gate

package auth

import (
	"context"

	"github.com/calibra/calibra-api/internal/store"
)

// principalContextKey is the key type for storing the principal in context.Context.
type principalContextKey struct{}

// WithPrincipal returns a new context with the resolved account attached.
// The account never carries a password hash; the gate resolves it through
// a hash-excluding lookup.
func WithPrincipal(ctx context.Context, account *store.Account) context.Context {
	return context.WithValue(ctx, principalContextKey{}, account)
}

// FromContext retrieves the principal from the context, returning nil if not present.
func FromContext(ctx context.Context) *store.Account {
	val := ctx.Value(principalContextKey{})
	if val == nil {
		return nil
	}
	account, ok := val.(*store.Account)
	if !ok {
		return nil
	}
	return account
}

// MustFromContext retrieves the principal from the context, panicking if not present.
func MustFromContext(ctx context.Context) *store.Account {
	account := FromContext(ctx)
	if account == nil {
		panic("auth: principal not found in context")
	}
	return account
}

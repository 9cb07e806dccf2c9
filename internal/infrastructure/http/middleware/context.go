package middleware

import (
	"context"

	"github.com/openride/rideauth/internal/domain"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	captainContextKey contextKey = "captain"
)

// WithUser injects the authenticated rider into the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated rider, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	v := ctx.Value(userContextKey)
	if v == nil {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// WithCaptain injects the authenticated driver into the context.
func WithCaptain(ctx context.Context, captain *domain.Captain) context.Context {
	return context.WithValue(ctx, captainContextKey, captain)
}

// CaptainFromContext returns the authenticated driver, or nil.
func CaptainFromContext(ctx context.Context) *domain.Captain {
	v := ctx.Value(captainContextKey)
	if v == nil {
		return nil
	}
	c, _ := v.(*domain.Captain)
	return c
}

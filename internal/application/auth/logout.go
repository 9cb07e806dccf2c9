package auth

import (
	"context"
	"time"

	"github.com/openride/rideauth/internal/application/ports"
)

// Logout revokes a session token until its natural expiry. Best-effort and
// idempotent: an empty token is a no-op and re-revoking succeeds.
type Logout struct {
	blacklist ports.TokenBlacklist
	ttl       time.Duration
}

// NewLogout creates the use case. ttl should match the token lifetime so
// blacklist entries outlive every token they revoke, and no longer.
func NewLogout(blacklist ports.TokenBlacklist, ttl time.Duration) *Logout {
	return &Logout{blacklist: blacklist, ttl: ttl}
}

func (uc *Logout) Execute(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.blacklist.Revoke(ctx, token, uc.ttl)
}

package ports

import (
	"context"
	"time"

	"github.com/openride/rideauth/internal/domain"
)

// UserRepository defines persistence for rider accounts. Lookups return
// (nil, nil) when no row matches. GetByEmail and GetByID omit the password
// hash; GetCredentialsByEmail is the only projection that includes it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.PrincipalID) (*domain.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CaptainRepository defines persistence for driver accounts, with the same
// projection rules as UserRepository.
type CaptainRepository interface {
	Create(ctx context.Context, captain *domain.Captain) error
	GetByEmail(ctx context.Context, email string) (*domain.Captain, error)
	GetByID(ctx context.Context, id domain.PrincipalID) (*domain.Captain, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.Captain, error)
}

// TokenBlacklist records session tokens revoked before their natural
// expiry. Revoke is idempotent; entry cleanup is a store-level concern
// (the TTL mirrors the token lifetime).
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openride/rideauth/internal/application/ports"
)

const revokedKeyPrefix = "rideauth:revoked:"

// TokenBlacklist implements ports.TokenBlacklist on Redis. Each entry
// carries a TTL matching the token lifetime, so the blacklist expires with
// the tokens it revokes and never grows unbounded.
type TokenBlacklist struct {
	client *goredis.Client
}

func NewTokenBlacklist(client *goredis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke marks token as invalidated. Revoking an already listed token just
// refreshes its TTL.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return b.client.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ ports.TokenBlacklist = (*TokenBlacklist)(nil)

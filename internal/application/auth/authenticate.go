package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

// Authenticate resolves a presented session token to a principal id.
// The blacklist is consulted before signature validation: a token that
// still verifies cryptographically but was revoked at logout must fail.
type Authenticate struct {
	issuer    ports.TokenIssuer
	blacklist ports.TokenBlacklist
}

func NewAuthenticate(issuer ports.TokenIssuer, blacklist ports.TokenBlacklist) *Authenticate {
	return &Authenticate{issuer: issuer, blacklist: blacklist}
}

func (uc *Authenticate) Execute(ctx context.Context, token string) (domain.PrincipalID, error) {
	if token == "" {
		return domain.PrincipalID{}, domerrors.ErrInvalidToken
	}
	revoked, err := uc.blacklist.IsRevoked(ctx, token)
	if err != nil {
		return domain.PrincipalID{}, err
	}
	if revoked {
		return domain.PrincipalID{}, domerrors.ErrTokenRevoked
	}
	subject, err := uc.issuer.Validate(token)
	if err != nil {
		return domain.PrincipalID{}, domerrors.ErrInvalidToken
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return domain.PrincipalID{}, domerrors.ErrInvalidToken
	}
	return domain.NewPrincipalID(id), nil
}

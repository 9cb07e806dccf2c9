package auth

import (
	"context"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

type LoginCaptainInput struct {
	Email    string
	Password string
}

type LoginCaptainResult struct {
	Token   string
	Captain *domain.Captain
}

// LoginCaptain verifies driver credentials and issues a session token.
type LoginCaptain struct {
	captains ports.CaptainRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
}

func NewLoginCaptain(captains ports.CaptainRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *LoginCaptain {
	return &LoginCaptain{captains: captains, hasher: hasher, issuer: issuer}
}

func (uc *LoginCaptain) Execute(ctx context.Context, input LoginCaptainInput) (*LoginCaptainResult, error) {
	captain, err := uc.captains.GetCredentialsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if captain == nil || !uc.hasher.Verify(input.Password, captain.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(captain.ID.String())
	if err != nil {
		return nil, err
	}
	captain.PasswordHash = ""
	return &LoginCaptainResult{Token: token, Captain: captain}, nil
}

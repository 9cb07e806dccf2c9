package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

type RegisterCaptainInput struct {
	FullName domain.Name
	Email    string
	Password string
	Vehicle  domain.Vehicle
}

type RegisterCaptainResult struct {
	Token   string
	Captain *domain.Captain
}

// RegisterCaptain creates a driver account and issues its first session token.
type RegisterCaptain struct {
	captains ports.CaptainRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
}

func NewRegisterCaptain(captains ports.CaptainRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterCaptain {
	return &RegisterCaptain{captains: captains, hasher: hasher, issuer: issuer}
}

func (uc *RegisterCaptain) Execute(ctx context.Context, input RegisterCaptainInput) (*RegisterCaptainResult, error) {
	existing, err := uc.captains.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	captain := &domain.Captain{
		ID:           domain.NewPrincipalID(uuid.New()),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Vehicle:      input.Vehicle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.captains.Create(ctx, captain); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(captain.ID.String())
	if err != nil {
		return nil, err
	}
	captain.PasswordHash = ""
	return &RegisterCaptainResult{Token: token, Captain: captain}, nil
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

type RegisterUserInput struct {
	FullName domain.Name
	Email    string
	Password string
}

type RegisterUserResult struct {
	Token string
	User  *domain.User
}

// RegisterUser creates a rider account and issues its first session token.
type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, issuer: issuer}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	existing, err := uc.users.GetByEmail(ctx, input.Email)
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
	user := &domain.User{
		ID:           domain.NewPrincipalID(uuid.New()),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The pre-check races with concurrent registrations; the unique index
	// reports the loser as ErrEmailTaken through Create.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &RegisterUserResult{Token: token, User: user}, nil
}

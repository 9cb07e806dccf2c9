package auth

import (
	"context"

	"github.com/openride/rideauth/internal/application/ports"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
)

type LoginUserInput struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	Token string
	User  *domain.User
}

// LoginUser verifies rider credentials and issues a session token.
// Unknown email and wrong password yield the same error so callers cannot
// probe which addresses are registered.
type LoginUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLoginUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *LoginUser {
	return &LoginUser{users: users, hasher: hasher, issuer: issuer}
}

func (uc *LoginUser) Execute(ctx context.Context, input LoginUserInput) (*LoginUserResult, error) {
	user, err := uc.users.GetCredentialsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &LoginUserResult{Token: token, User: user}, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL bounds the lifetime of issued session tokens.
const DefaultTokenTTL = 24 * time.Hour

// TokenSigner implements ports.TokenIssuer with HS256 session tokens.
// The signing secret is process-wide configuration loaded once at startup;
// changing it invalidates every outstanding token.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret []byte, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenSigner{secret: secret, ttl: ttl}
}

// TTL returns the lifetime stamped on issued tokens.
func (t *TokenSigner) TTL() time.Duration { return t.ttl }

// Issue signs a token whose subject is the principal id.
func (t *TokenSigner) Issue(principalID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   principalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate checks signature and expiry and returns the principal id.
func (t *TokenSigner) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

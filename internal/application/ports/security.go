package ports

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates session JWTs (HS256). Validate returns
// the principal id carried in the subject claim.
type TokenIssuer interface {
	Issue(principalID string) (string, error)
	Validate(token string) (principalID string, err error)
}

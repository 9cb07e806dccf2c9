package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openride/rideauth/internal/application/auth"
	"github.com/openride/rideauth/internal/domain"
)

type stubIssuer struct {
	subjects map[string]string
}

func (s *stubIssuer) Issue(principalID string) (string, error) {
	tok := "tok-" + principalID
	s.subjects[tok] = principalID
	return tok, nil
}

func (s *stubIssuer) Validate(token string) (string, error) {
	sub, ok := s.subjects[token]
	if !ok {
		return "", errors.New("signature invalid")
	}
	return sub, nil
}

type stubBlacklist struct {
	revoked map[string]bool
}

func (s *stubBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	s.revoked[token] = true
	return nil
}

func (s *stubBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

type stubUserRepo struct {
	users map[domain.PrincipalID]*domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }

func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id domain.PrincipalID) (*domain.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) GetCredentialsByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func newGuardFixture(t *testing.T) (*UserGuard, *stubIssuer, *stubBlacklist, *domain.User, string) {
	t.Helper()
	issuer := &stubIssuer{subjects: map[string]string{}}
	blacklist := &stubBlacklist{revoked: map[string]bool{}}
	user := &domain.User{
		ID:       domain.NewPrincipalID(uuid.New()),
		FullName: domain.Name{First: "Ada"},
		Email:    "ada@x.com",
	}
	repo := &stubUserRepo{users: map[domain.PrincipalID]*domain.User{user.ID: user}}
	tok, err := issuer.Issue(user.ID.String())
	require.NoError(t, err)
	guard := NewUserGuard(auth.NewAuthenticate(issuer, blacklist), repo)
	return guard, issuer, blacklist, user, tok
}

func protected(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		require.NotNil(t, user)
		w.WriteHeader(http.StatusOK)
	})
}

func TestUserGuard_BearerHeader(t *testing.T) {
	guard, _, _, _, tok := newGuardFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard.Handler(protected(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserGuard_Cookie(t *testing.T) {
	guard, _, _, _, tok := newGuardFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok})
	rec := httptest.NewRecorder()
	guard.Handler(protected(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserGuard_MissingToken(t *testing.T) {
	guard, _, _, _, _ := newGuardFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	rec := httptest.NewRecorder()
	guard.Handler(protected(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestUserGuard_RevokedToken(t *testing.T) {
	guard, _, blacklist, _, tok := newGuardFixture(t)
	blacklist.revoked[tok] = true

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard.Handler(protected(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserGuard_VanishedPrincipal(t *testing.T) {
	issuer := &stubIssuer{subjects: map[string]string{}}
	blacklist := &stubBlacklist{revoked: map[string]bool{}}
	repo := &stubUserRepo{users: map[domain.PrincipalID]*domain.User{}}
	tok, err := issuer.Issue(uuid.NewString())
	require.NoError(t, err)
	guard := NewUserGuard(auth.NewAuthenticate(issuer, blacklist), repo)

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard.Handler(protected(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionToken_CookieWinsOverHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", SessionToken(req))
}

func TestSessionToken_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", SessionToken(req))
	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", SessionToken(req))
}

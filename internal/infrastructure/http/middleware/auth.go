package middleware

import (
	"net/http"
	"strings"

	"github.com/openride/rideauth/internal/application/auth"
	"github.com/openride/rideauth/internal/application/ports"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SessionToken extracts the session token from the token cookie or the
// Authorization header. Empty when neither is present.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// UserGuard authenticates rider requests and puts the resolved user in the
// request context. Fail-closed: any uncertainty is a 401, including tokens
// whose account has since vanished.
type UserGuard struct {
	authenticate *auth.Authenticate
	users        ports.UserRepository
}

func NewUserGuard(authenticate *auth.Authenticate, users ports.UserRepository) *UserGuard {
	return &UserGuard{authenticate: authenticate, users: users}
}

func (g *UserGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		id, err := g.authenticate.Execute(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		user, err := g.users.GetByID(r.Context(), id)
		if err != nil || user == nil {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// CaptainGuard authenticates driver requests. Blacklisted tokens are always
// rejected, same as for riders.
type CaptainGuard struct {
	authenticate *auth.Authenticate
	captains     ports.CaptainRepository
}

func NewCaptainGuard(authenticate *auth.Authenticate, captains ports.CaptainRepository) *CaptainGuard {
	return &CaptainGuard{authenticate: authenticate, captains: captains}
}

func (g *CaptainGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		id, err := g.authenticate.Execute(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		captain, err := g.captains.GetByID(r.Context(), id)
		if err != nil || captain == nil {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaptain(r.Context(), captain)))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","code":"unauthorized"}`))
}

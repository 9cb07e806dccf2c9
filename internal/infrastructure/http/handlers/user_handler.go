package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/openride/rideauth/internal/application/auth"
	"github.com/openride/rideauth/internal/domain"
	domerrors "github.com/openride/rideauth/internal/domain/errors"
	"github.com/openride/rideauth/internal/infrastructure/http/middleware"
)

// UserHandler serves the rider endpoints.
type UserHandler struct {
	register     *auth.RegisterUser
	login        *auth.LoginUser
	logout       *auth.Logout
	validate     *validator.Validate
	cookieTTL    time.Duration
	secureCookie bool
	log          zerolog.Logger
}

func NewUserHandler(register *auth.RegisterUser, login *auth.LoginUser, logout *auth.Logout, cookieTTL time.Duration, secureCookie bool, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		register:     register,
		login:        login,
		logout:       logout,
		validate:     newValidator(),
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
		log:          log,
	}
}

type registerUserRequest struct {
	FullName struct {
		First string `json:"firstname" validate:"required,min=3"`
		Last  string `json:"lastname"`
	} `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		FullName: domain.Name{First: body.FullName.First, Last: body.FullName.Last},
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", "user", false)
		if errors.Is(err, domerrors.ErrEmailTaken) {
			writeErr(w, http.StatusBadRequest, ErrCodeEmailTaken, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("register user failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", "user", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": result.Token,
		"user":  result.User,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginUserInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", "user", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login user failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", "user", true)
	http.SetCookie(w, sessionCookie(result.Token, h.cookieTTL, h.secureCookie))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"user":  result.User,
	})
}

// Profile returns the rider resolved by the guard.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout blacklists the presented token and clears the session cookie.
// Best-effort: it succeeds even when no token is presented and a failed
// revoke is only logged.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if err := h.logout.Execute(r.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("revoke token failed")
	}
	middleware.RecordAuthAttempt("logout", "user", true)
	http.SetCookie(w, clearSessionCookie(h.secureCookie))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

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

// CaptainHandler serves the driver endpoints.
type CaptainHandler struct {
	register     *auth.RegisterCaptain
	login        *auth.LoginCaptain
	logout       *auth.Logout
	validate     *validator.Validate
	cookieTTL    time.Duration
	secureCookie bool
	log          zerolog.Logger
}

func NewCaptainHandler(register *auth.RegisterCaptain, login *auth.LoginCaptain, logout *auth.Logout, cookieTTL time.Duration, secureCookie bool, log zerolog.Logger) *CaptainHandler {
	return &CaptainHandler{
		register:     register,
		login:        login,
		logout:       logout,
		validate:     newValidator(),
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
		log:          log,
	}
}

type registerCaptainRequest struct {
	FullName struct {
		First string `json:"firstname" validate:"required,min=3"`
		Last  string `json:"lastname"`
	} `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Vehicle  struct {
		Color    string `json:"color" validate:"required,min=3"`
		Plate    string `json:"plate" validate:"required,min=3"`
		Capacity int    `json:"capacity" validate:"required,min=1"`
		Type     string `json:"vehicleType" validate:"required,oneof=bike car auto"`
	} `json:"vehicle" validate:"required"`
}

func (h *CaptainHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerCaptainRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterCaptainInput{
		FullName: domain.Name{First: body.FullName.First, Last: body.FullName.Last},
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
		Vehicle: domain.Vehicle{
			Color:    body.Vehicle.Color,
			Plate:    body.Vehicle.Plate,
			Capacity: body.Vehicle.Capacity,
			Type:     domain.VehicleType(body.Vehicle.Type),
		},
	})
	if err != nil {
		AuditLog(h.log, r, "captain.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", "captain", false)
		if errors.Is(err, domerrors.ErrEmailTaken) {
			writeErr(w, http.StatusBadRequest, ErrCodeEmailTaken, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("register captain failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "captain.register", result.Captain.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", "captain", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   result.Token,
		"captain": result.Captain,
	})
}

func (h *CaptainHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginCaptainInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "captain.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", "captain", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login captain failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "captain.login", result.Captain.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", "captain", true)
	http.SetCookie(w, sessionCookie(result.Token, h.cookieTTL, h.secureCookie))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   result.Token,
		"captain": result.Captain,
	})
}

// Profile returns the driver resolved by the guard.
func (h *CaptainHandler) Profile(w http.ResponseWriter, r *http.Request) {
	captain := middleware.CaptainFromContext(r.Context())
	if captain == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"captain": captain})
}

// Logout blacklists the presented token and clears the session cookie.
func (h *CaptainHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if err := h.logout.Execute(r.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("revoke token failed")
	}
	middleware.RecordAuthAttempt("logout", "captain", true)
	http.SetCookie(w, clearSessionCookie(h.secureCookie))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

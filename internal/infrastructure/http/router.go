package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/openride/rideauth/internal/infrastructure/http/handlers"
	"github.com/openride/rideauth/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	Users        *handlers.UserHandler
	Captains     *handlers.CaptainHandler
	Health       *handlers.HealthHandler
	UserGuard    func(http.Handler) http.Handler // resolves rider tokens for /users/profile
	CaptainGuard func(http.Handler) http.Handler // resolves driver tokens for /captains/profile
	Secure       func(http.Handler) http.Handler
	Log          zerolog.Logger
	Metrics      bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", cfg.Users.Register)
		r.Post("/login", cfg.Users.Login)
		// Logout is deliberately unguarded: it must succeed even with a
		// missing or already revoked token.
		r.Get("/logout", cfg.Users.Logout)
		r.Group(func(r chi.Router) {
			r.Use(cfg.UserGuard)
			r.Get("/profile", cfg.Users.Profile)
		})
	})

	r.Route("/captains", func(r chi.Router) {
		r.Post("/register", cfg.Captains.Register)
		r.Post("/login", cfg.Captains.Login)
		r.Get("/logout", cfg.Captains.Logout)
		r.Group(func(r chi.Router) {
			r.Use(cfg.CaptainGuard)
			r.Get("/profile", cfg.Captains.Profile)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openride/rideauth/internal/application/auth"
	"github.com/openride/rideauth/internal/config"
	infraauth "github.com/openride/rideauth/internal/infrastructure/auth"
	httprouter "github.com/openride/rideauth/internal/infrastructure/http"
	"github.com/openride/rideauth/internal/infrastructure/http/handlers"
	"github.com/openride/rideauth/internal/infrastructure/http/middleware"
	"github.com/openride/rideauth/internal/infrastructure/persistence/postgres"
	redisstore "github.com/openride/rideauth/internal/infrastructure/persistence/redis"
	"github.com/openride/rideauth/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	// The blacklist is fail-closed, so the service cannot run without its
	// store.
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse REDIS_URL")
	}
	redisClient := redis.NewClient(opt)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("ping redis")
	}

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	signer := infraauth.NewTokenSigner([]byte(cfg.JWT.Secret), time.Duration(cfg.JWT.Expiry)*time.Second)

	userRepo := postgres.NewUserRepository(pool)
	captainRepo := postgres.NewCaptainRepository(pool)
	blacklist := redisstore.NewTokenBlacklist(redisClient)

	authenticate := auth.NewAuthenticate(signer, blacklist)
	logout := auth.NewLogout(blacklist, signer.TTL())
	secureCookies := !cfg.Secure.IsDevelopment

	userHandler := handlers.NewUserHandler(
		auth.NewRegisterUser(userRepo, hasher, signer),
		auth.NewLoginUser(userRepo, hasher, signer),
		logout, signer.TTL(), secureCookies, log)
	captainHandler := handlers.NewCaptainHandler(
		auth.NewRegisterCaptain(captainRepo, hasher, signer),
		auth.NewLoginCaptain(captainRepo, hasher, signer),
		logout, signer.TTL(), secureCookies, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		Users:        userHandler,
		Captains:     captainHandler,
		Health:       healthHandler,
		UserGuard:    middleware.NewUserGuard(authenticate, userRepo).Handler,
		CaptainGuard: middleware.NewCaptainGuard(authenticate, captainRepo).Handler,
		Secure:       middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		Log:          log,
		Metrics:      true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

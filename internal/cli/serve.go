package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-clinic-visits/internal/adapters/auth/jwtauth"
	"pet-clinic-visits/internal/adapters/auth/odin"
	"pet-clinic-visits/internal/adapters/cache/rediscache"
	pg "pet-clinic-visits/internal/adapters/storage/postgres"
	"pet-clinic-visits/internal/config"
	"pet-clinic-visits/internal/ports/auth"
	"pet-clinic-visits/internal/router"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Arranca la API HTTP. Sin DB_DSN usa el store in-memory; sin REDIS_ADDR no hay cache.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	opts := router.Options{
		AuthVerifier:   verifier,
		Logger:         log,
		CacheTTL:       cfg.Redis.TTL,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
		}
		opts.DB = db
	}

	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(ctx, rediscache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.AppName+":")
		if err != nil {
			return err
		}
		defer cache.Close()
		opts.Cache = cache
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	log.Info("starting server", map[string]any{
		"addr":    srv.Addr,
		"auth":    cfg.AuthMode(),
		"store":   storeName(opts),
		"cache":   opts.Cache != nil,
		"ratelim": cfg.RateLimit.RPS,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildVerifier: JWT si hay secret, Odin si hay base url, si no modo dev (nil).
func buildVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode() {
	case "jwt":
		return jwtauth.NewVerifier(jwtauth.Config{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.JWTIssuer,
		})
	case "odin":
		c, err := odin.NewClient(odin.Config{BaseURL: cfg.Odin.BaseURL, APIKey: cfg.Odin.APIKey})
		if err != nil {
			return nil, err
		}
		return odin.NewVerifier(c), nil
	default:
		return nil, nil
	}
}

func storeName(opts router.Options) string {
	if opts.DB != nil {
		return "postgres"
	}
	return "memory"
}

// @title Pet Plates API
// @version 1.0
// @description Perfiles de mascotas, comidas guardadas y generación de recetas caseras balanceadas.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-plates/internal/adapters/auth/remote"
	memcache "pet-plates/internal/adapters/cache/memory"
	rediscache "pet-plates/internal/adapters/cache/redis"
	pg "pet-plates/internal/adapters/storage/postgres"
	"pet-plates/internal/platform/config"
	"pet-plates/internal/platform/logger"
	"pet-plates/internal/platform/metrics"
	"pet-plates/internal/ports/auth"
	"pet-plates/internal/ports/cache"
	"pet-plates/internal/recipes"
	"pet-plates/internal/router"

	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pet-plates: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PETPLATES_CONFIG"))
	if err != nil {
		return err
	}

	zl := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})
	if z, ok := zl.(*logger.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}
	log := zl.With(map[string]any{"env": cfg.App.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := metrics.New()
	if err != nil {
		return err
	}

	gen, err := recipes.NewDefaultGenerator(recipes.Config{
		BestOfAttempts:   cfg.Generation.BestOfAttempts,
		RetryFactor:      cfg.Generation.RetryFactor,
		OverageCeiling:   cfg.Generation.OverageCeiling,
		CalorieTolerance: cfg.Generation.CalorieTolerance,
		ReferenceBudget:  cfg.Generation.ReferenceBudget,
	})
	if err != nil {
		return fmt.Errorf("load recipe data: %w", err)
	}

	opts := router.Options{
		Generator: gen,
		MaxBatch:  cfg.Generation.MaxBatch,
		CacheTTL:  cfg.Cache.TTL,
		Logger:    log,
		Metrics:   m,
	}

	// Storage: DSN vacío => in-memory (dev)
	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		applied, err := pg.Migrate(ctx, db)
		if err != nil {
			return err
		}
		log.Info("database ready", map[string]any{"migrations_applied": len(applied)})
		opts.DB = db
	} else {
		log.Warn("database.dsn not set, using in-memory storage", nil)
	}

	c, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()
	opts.Cache = c

	verifier, err := openVerifier(cfg.Auth)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("auth.verify_url not set, X-Debug-User-ID dev mode enabled", nil)
	}
	opts.AuthVerifier = verifier

	if cfg.RateLimit.Enable {
		opts.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "cache": cfg.Cache.Driver})
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, func(), error) {
	if cfg.Driver == "redis" {
		rc, err := rediscache.Connect(ctx, rediscache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, func() { _ = rc.Close() }, nil
	}
	return memcache.New(cfg.TTL), func() {}, nil
}

// openVerifier devuelve nil (modo dev) si no hay verify_url.
func openVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	if cfg.VerifyURL == "" {
		return nil, nil
	}
	v, err := remote.NewVerifier(remote.Config{
		BaseURL: cfg.VerifyURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("auth verifier: %w", err)
	}
	return v, nil
}

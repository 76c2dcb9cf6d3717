package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pet-marketplace/internal/adapters/auth/local"
	"pet-marketplace/internal/adapters/auth/supabase"
	mem "pet-marketplace/internal/adapters/storage/memory"
	pg "pet-marketplace/internal/adapters/storage/postgres"
	rds "pet-marketplace/internal/adapters/storage/redis"
	"pet-marketplace/internal/config"
	"pet-marketplace/internal/domain/seed"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/ports/auth"
	"pet-marketplace/internal/ports/kv"
	"pet-marketplace/internal/router"
)

// @title Pet Marketplace API
// @version 1.0
// @description Avisos de mascotas, mensajería entre compradores y vendedores, y analytics de administración sobre un KV store.
// @BasePath /
func main() {
	// .env es opcional (dev local)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	store, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeStore()

	idp, verifier, err := openIdentity(cfg.Auth, store)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("AUTH_PROVIDER=dev: tokens are not verified, X-Debug-User-ID is trusted", nil)
	}

	fixture, err := seed.LoadFixture(cfg.Seed.File)
	if err != nil {
		return err
	}
	loc, err := cfg.Analytics.Location()
	if err != nil {
		return err
	}

	app, err := router.New(router.Options{
		Logger:            log,
		Store:             store,
		Identity:          idp,
		AuthVerifier:      verifier,
		Metrics:           metrics.New(),
		AllowedOrigins:    cfg.Server.AllowedOrigins(),
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
		RequestTimeout:    cfg.Server.RequestTimeout,
		RateLimitRPS:      cfg.RateLimit.RPS,
		RateLimitBurst:    cfg.RateLimit.Burst,
		AnalyticsLocation: loc,
		SeedEndpoint:      cfg.Seed.EndpointEnabled,
		SeedFixture:       &fixture,
	})
	if err != nil {
		return err
	}

	if cfg.Seed.DemoData {
		if _, err := app.Seed.Run(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"storage": cfg.Storage.Driver,
			"auth":    cfg.Auth.Provider,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (kv.Store, func(), error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres open: %w", err)
		}
		if cfg.Migrate {
			if err := pg.Migrate(db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		log.Info("storage ready", map[string]any{"driver": cfg.Driver})
		return pg.NewKVStore(db), closer(db, log), nil

	case config.StorageRedis:
		s, err := rds.Open(ctx, rds.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("storage ready", map[string]any{"driver": cfg.Driver, "addr": cfg.RedisAddr})
		return s, closer(s, log), nil

	default:
		log.Warn("using in-memory storage: data is lost on restart", nil)
		return mem.NewKVStore(), func() {}, nil
	}
}

func closer(c io.Closer, log logger.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("storage close failed", map[string]any{"err": err})
		}
	}
}

// openIdentity devuelve (nil, nil) en modo dev.
func openIdentity(cfg config.AuthConfig, store kv.Store) (auth.IdentityProvider, auth.AuthVerifier, error) {
	switch cfg.Provider {
	case config.AuthLocal:
		p, err := local.NewProvider(store, local.Config{Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL})
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil

	case config.AuthSupabase:
		client, err := supabase.NewClient(supabase.Config{
			URL:            cfg.SupabaseURL,
			AnonKey:        cfg.SupabaseAnonKey,
			ServiceRoleKey: cfg.SupabaseServiceRoleKey,
			JWTSecret:      cfg.SupabaseJWTSecret,
		})
		if err != nil {
			return nil, nil, err
		}
		p := supabase.NewProvider(client, cfg.SupabaseJWTSecret)
		return p, p, nil

	default:
		return nil, nil, nil
	}
}

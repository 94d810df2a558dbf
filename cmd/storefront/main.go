package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techpazar/storefront/internal/api"
	"github.com/techpazar/storefront/internal/cart"
	"github.com/techpazar/storefront/internal/catalog"
	"github.com/techpazar/storefront/internal/classifier"
	"github.com/techpazar/storefront/internal/cleanup"
	"github.com/techpazar/storefront/internal/config"
	"github.com/techpazar/storefront/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting storefront",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"cart_backend", cfg.Cart.Backend,
	)

	// Build the classifier: built-in rules unless a rules directory
	// overrides them
	rules := classifier.Default()
	if cfg.Catalog.RulesDir != "" {
		loaded, err := classifier.LoadFromDir(cfg.Catalog.RulesDir)
		if err != nil {
			slog.Warn("failed to load classifier rules", "dir", cfg.Catalog.RulesDir, "error", err)
		} else if len(loaded) > 0 {
			rules = loaded
		}
	}

	clf, err := classifier.New(rules)
	if err != nil {
		slog.Error("failed to build classifier", "error", err)
		os.Exit(1)
	}

	// Load the catalog feed. A missing or malformed feed is fatal: the
	// storefront has nothing to sell without it.
	cat, err := catalog.Load(cfg.Catalog.Path, clf)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Initialize the cart repository
	repo, err := newCartRepository(initCtx, cfg)
	if err != nil {
		slog.Error("failed to create cart repository", "error", err)
		os.Exit(1)
	}
	slog.Info("cart storage connected", "backend", cfg.Cart.Backend)

	carts := cart.NewStore(cat, repo)
	pipeline := catalog.NewPipeline()

	// Start the stale-cart purge worker
	cleaner := cleanup.NewCleaner(repo, cfg.Cart.TTL, cfg.Cleanup.Interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cat, pipeline, carts, repo)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := repo.Close(); err != nil {
		slog.Error("cart storage close error", "error", err)
	}

	slog.Info("storefront stopped")
}

// newCartRepository builds the configured cart persistence backend.
func newCartRepository(ctx context.Context, cfg *config.Config) (storage.CartRepository, error) {
	switch cfg.Cart.Backend {
	case config.BackendRedis:
		return storage.NewRedisRepository(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Cart.TTL)

	case config.BackendPostgres:
		repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			return nil, err
		}
		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := storage.RunMigrations(ctx, repo.Pool(), cfg.Database.MigrationsDir); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repo, nil

	case config.BackendMemory:
		return storage.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown cart backend: %q", cfg.Cart.Backend)
	}
}

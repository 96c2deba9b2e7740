package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bhojnalaya/ordercore/internal/analytics"
	"github.com/bhojnalaya/ordercore/internal/auth"
	"github.com/bhojnalaya/ordercore/internal/cart"
	"github.com/bhojnalaya/ordercore/internal/catalog"
	"github.com/bhojnalaya/ordercore/internal/httpapi"
	"github.com/bhojnalaya/ordercore/internal/ledger"
	"github.com/bhojnalaya/ordercore/internal/storage"
	"github.com/bhojnalaya/ordercore/pkg/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("OrderCore\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting ordercore",
		zap.String("version", version),
		zap.String("build_mode", storage.BuildMode),
		zap.String("driver", storage.DriverName),
		zap.String("addr", cfg.Addr),
		zap.String("db_path", cfg.DBPath))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close storage", zap.Error(cerr))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.New(store)
	if cfg.SeedMenu {
		if err := cat.Seed(ctx, catalog.DefaultMenu()); err != nil {
			return fmt.Errorf("failed to seed menu: %w", err)
		}
		logger.Info("menu seeded")
	}

	resolver, err := auth.NewStaticResolver(cfg.AuthTokens)
	if err != nil {
		return fmt.Errorf("invalid auth token configuration: %w", err)
	}

	carts := cart.NewStore(store, cat)
	orders := ledger.New(store)
	agg := analytics.New(store, cat, loc)

	server := httpapi.NewServer(carts, orders, agg, resolver, logger)
	return server.Run(ctx, cfg.Addr)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

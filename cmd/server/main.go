// Package main initializes and starts the timelimit synchronization server,
// setting up configuration, logging, the record store, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/akulikov/timelimit/internal/config"
	"github.com/akulikov/timelimit/internal/logger"
	"github.com/akulikov/timelimit/internal/server/handler/http"
	"github.com/akulikov/timelimit/internal/service"
	"github.com/akulikov/timelimit/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// newStore constructs the record store selected by the configuration.
func newStore(ctx context.Context, options *config.Options) (store.Store, error) {
	switch options.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(options.StoreFile)
	case "redis":
		return store.NewRedis(ctx, store.RedisOptions{
			Addr:     options.RedisAddr,
			Password: options.RedisPassword,
			DB:       options.RedisDB,
		})
	case "postgres":
		return store.NewPostgres(options.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", options.StoreBackend)
	}
}

func main() {
	// Load .env first so the environment overrides below see its values.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Initialize the record store.
	recordStore, err := newStore(context.Background(), options)
	if err != nil {
		zapLogger.Fatal("cannot init store", zap.Error(err))
	}

	// One lock set shared by both services so writes to a record
	// never interleave.
	locks := store.NewKeyLock()

	// Initialize business-logic services.
	authService := service.NewAuthService(recordStore, locks)
	syncService := service.NewSyncService(recordStore, locks)

	// Create HTTP handlers for auth and state endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	stateHandler := &http.StateHandler{SyncService: syncService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, stateHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("store", options.StoreBackend),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

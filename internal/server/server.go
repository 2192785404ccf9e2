// Package server owns the process lifecycle: connect the document store,
// boot the asset disks, serve HTTP, and shut down cleanly on a signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderdesk/delivery/app/repositories"
	"github.com/orderdesk/delivery/config"
	"github.com/orderdesk/delivery/internal/kernel"
	"github.com/orderdesk/delivery/pkg/database"
	"github.com/orderdesk/delivery/pkg/logger"
	"github.com/orderdesk/delivery/pkg/storage"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Start serves until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

// Run boots every dependency and serves until ctx is cancelled. A failed
// database connection aborts startup before the listener is bound.
func Run(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := database.Connect(connectCtx, config.MongoURI(), config.MongoDatabase()); err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer dcancel()
		if err := database.Disconnect(dctx); err != nil {
			logger.Warn("mongodb disconnect failed", "error", err)
		}
	}()

	db, err := database.DB()
	if err != nil {
		return err
	}
	if err := database.EnsureIndexes(connectCtx, db); err != nil {
		logger.Warn("index creation failed", "error", err)
	}

	if config.LogToMongo() {
		h := logger.NewMongoHandler(db.Collection(database.LogsCollection), slog.LevelInfo)
		logger.Attach(h)
		defer h.Close()
	}

	if err := storage.Connect(); err != nil {
		return err
	}
	uploads, err := storage.Use("local")
	if err != nil {
		return err
	}

	k, err := kernel.NewHTTPKernel(kernel.Deps{
		Items:        repositories.NewItemRepository(db),
		Orders:       repositories.NewOrderRepository(db),
		Disk:         storage.Default(),
		DefaultImage: config.DefaultImage(),
		Uploads:      uploads,
		Health:       database.Ping,
	})
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

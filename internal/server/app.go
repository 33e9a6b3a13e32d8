// Package server wires vaultd together: configuration, storage, migrations,
// the HTTP API and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/server/config"
	"github.com/LorenzoDOrtona/life-logger/internal/server/httpapi"
	"github.com/LorenzoDOrtona/life-logger/internal/server/migrations"
	"github.com/LorenzoDOrtona/life-logger/internal/server/repositories/objects"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   objects.Repository
	db     *sql.DB // nil in in-memory mode
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: cfg, logger: logger}

	if cfg.InMemory {
		app.repo = objects.NewInMemoryRepository()
		return app, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app.db = db
	app.repo = objects.NewPostgresRepository(db)
	return app, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then shuts down gracefully within the configured timeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	api := httpapi.NewServer(app.repo, app.config.SecretKey, app.logger)
	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: api.Handler()}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "vaultd listening", "addr", app.config.EndpointAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		app.logger.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	if app.db != nil {
		return app.db.Close()
	}
	return nil
}

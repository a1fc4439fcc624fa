package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/zerohunger/backend/internal/backend/http"
	"github.com/zerohunger/backend/internal/backend/service"
	"github.com/zerohunger/backend/internal/backend/store"
	"github.com/zerohunger/backend/internal/backend/store/drivers/sqlite"
	"github.com/zerohunger/backend/pkg/cryptox"
	"github.com/zerohunger/backend/pkg/httpx"
	"github.com/zerohunger/backend/pkg/jwtx"
	"github.com/zerohunger/backend/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "zerohunger-backend"
)

// Application wires the backend together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions *jwtx.SessionManager
	accounts *service.AccountService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.accounts = &service.AccountService{Store: app.db}

	if err := app.bootstrapSuperuser(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler is the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until it fails or a shutdown signal
// arrives.
func (app *Application) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		app.logger.Info("zerohunger backend starting", "port", app.cfg.Port, "env", app.cfg.Env)
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down zerohunger backend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("zerohunger backend stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initSessions() error {
	secret := []byte(app.cfg.SessionSecret)
	if len(secret) == 0 {
		var err error
		if secret, err = cryptox.GenerateKey(cryptox.TokenSize256); err != nil {
			return err
		}
		app.logger.Warn("ADMIN_SESSION_SECRET not set, admin sessions will not survive a restart")
	}

	sessions, err := jwtx.NewSessionManager(secret, serviceName, app.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid ADMIN_SESSION_SECRET: %w", err)
	}
	app.sessions = sessions
	return nil
}

// bootstrapSuperuser provisions SUPERUSER_EMAIL on an empty database.
func (app *Application) bootstrapSuperuser(ctx context.Context) error {
	if app.cfg.SuperuserEmail == "" {
		return nil
	}

	ctx = slogx.WithContext(ctx, app.logger)
	_, err := app.accounts.EnsureSuperuser(ctx,
		app.cfg.SuperuserEmail,
		app.cfg.SuperuserUsername,
		app.cfg.SuperuserPassword,
	)
	switch {
	case errors.Is(err, service.ErrAlreadyBootstrapped):
		app.logger.Debug("superuser bootstrap skipped, accounts already exist")
		return nil
	case err != nil:
		return fmt.Errorf("failed to provision superuser: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() error {
	httpx.SetTrustProxyHeaders(app.cfg.TrustProxyHeaders)

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.accounts,
		app.sessions,
		app.cfg.Env != "dev",
		app.logger,
	)
	if err := router.ApplyRoutes(); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

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

	httpapi "github.com/integra-admin/integra/internal/users/http"
	"github.com/integra-admin/integra/internal/users/service"
	"github.com/integra-admin/integra/internal/users/store/drivers/postgres"
	"github.com/integra-admin/integra/internal/users/store/drivers/sqlite"
	"github.com/integra-admin/integra/internal/users/store/sqlstore"
	"github.com/integra-admin/integra/pkg/cryptox"
	"github.com/integra-admin/integra/pkg/jwtx"
	"github.com/integra-admin/integra/pkg/metricsx"
	"github.com/integra-admin/integra/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires configuration, storage, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      *sqlstore.Store
	metrics *metricsx.Metrics

	credentials  *service.CredentialStore
	gate         *service.AccessGate
	registration *service.RegistrationService
	login        *service.LoginService
	directory    *service.DirectoryService
	roles        *service.RolesService

	server *http.Server
	router *httpapi.Router
}

// Option customises an Application before it is wired.
type Option func(*Application)

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// New validates cfg and builds every dependency. Nothing listens until Run.
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "users-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the routed handler, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT/SIGTERM or a server failure, then shuts down.
func (app *Application) Run() error {
	app.logger.Info("users service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
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

// Shutdown drains in-flight requests within the grace period and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down users service...")

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

	app.logger.Info("users service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db  *sqlstore.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.Open(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.Open(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	hasher, err := cryptox.NewHasher(pepper, cryptox.DefaultParams)
	if err != nil {
		return err
	}

	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.Secret))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.Secret), app.cfg.Issuer, app.cfg.Audience)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	selfService, err := app.cfg.selfServiceRoles()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	app.metrics = metricsx.New()
	app.credentials = &service.CredentialStore{
		Store:   app.db,
		Hasher:  hasher,
		Timeout: app.cfg.StoreTimeout,
	}
	tokens := &service.TokenService{
		Signer:   signer,
		Issuer:   app.cfg.Issuer,
		Audience: app.cfg.Audience,
	}

	app.gate = &service.AccessGate{Verifier: verifier, Metrics: app.metrics}
	app.registration = &service.RegistrationService{
		Credentials:      app.credentials,
		SelfServiceRoles: selfService,
		Metrics:          app.metrics,
	}
	app.login = &service.LoginService{
		Credentials: app.credentials,
		Tokens:      tokens,
		Metrics:     app.metrics,
	}
	app.directory = &service.DirectoryService{Credentials: app.credentials}
	app.roles = &service.RolesService{Credentials: app.credentials}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.credentials, app.metrics, app.logger)

	router.Gate = app.gate
	router.RegistrationService = app.registration
	router.LoginService = app.login
	router.DirectoryService = app.directory
	router.RolesService = app.roles
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

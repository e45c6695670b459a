// Package server wires configuration, storage, services and the HTTP router
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"moviecatalog/internal/auth"
	"moviecatalog/internal/config"
	"moviecatalog/internal/handlers"
	"moviecatalog/internal/importer"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/monitoring"
	"moviecatalog/internal/repositories/repomanager"
	"moviecatalog/internal/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
)

// Services bundles the application services built on one database pool.
type Services struct {
	Repos    repomanager.RepositoryManager
	Tokens   *auth.TokenIssuer
	Users    *services.UserService
	Movies   *services.MovieService
	Importer *importer.Importer
}

func NewServices(cfg *config.Config, db *sql.DB, logger logging.Logger) (*Services, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	movies := services.NewMovieService(db, repos, logger.With("component", "movies"))

	return &Services{
		Repos:    repos,
		Tokens:   tokens,
		Users:    services.NewUserService(db, repos, tokens, logger.With("component", "users")),
		Movies:   movies,
		Importer: importer.New(movies, cfg.ImportFile, logger.With("component", "importer")),
	}, nil
}

type App struct {
	config   *config.Config
	db       *sql.DB
	logger   logging.Logger
	services *Services
	server   *http.Server
}

func NewApp(cfg *config.Config, db *sql.DB, logger logging.Logger) (*App, error) {
	svc, err := NewServices(cfg, db, logger)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(handlers.Dependencies{
		Users:          svc.Users,
		Movies:         svc.Movies,
		Importer:       svc.Importer,
		DB:             db,
		Monitor:        monitoring.NewService(time.Now(), db, cfg.ImportFile),
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MonitoringKey:  cfg.MonitoringKey,
	})
	router := handlers.NewRouter(h, svc.Tokens, logger)

	return &App{
		config:   cfg,
		db:       db,
		logger:   logger,
		services: svc,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           withCORS(router, cfg.CORSOrigins),
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
		},
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

func withCORS(next http.Handler, origins []string) http.Handler {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed = append(allowed, o)
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Monitoring-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}

// Run applies migrations when configured, serves HTTP and shuts down
// gracefully once ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	if app.config.RunMigrations {
		if err := app.services.Repos.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		app.logger.Info(ctx, "migrations applied")
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "movie catalog API listening", "addr", app.config.HTTPAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

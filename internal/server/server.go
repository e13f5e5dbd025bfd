// Package server provides the HTTP server for the matchmaking API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Initialization follows the same order every time: storage → auth providers →
// services → handlers → routes. The run loop is an errgroup that serves HTTP
// until the context is cancelled or a termination signal arrives, then shuts
// down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vivahmatch/backend/internal/astrology"
	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/database"
	"github.com/vivahmatch/backend/internal/handlers"
	"github.com/vivahmatch/backend/internal/middleware"
	"github.com/vivahmatch/backend/internal/repository"
	"github.com/vivahmatch/backend/internal/service"
	"github.com/vivahmatch/backend/internal/utils"
	"github.com/vivahmatch/backend/internal/utils/ratelimit"
	"github.com/vivahmatch/backend/migrations"
	"github.com/vivahmatch/backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages signup, login and the current account
	AuthHandler *handlers.AuthHandler

	// ProfileHandler manages profile creation, lookup and updates
	ProfileHandler *handlers.ProfileHandler

	// SearchHandler serves filter search and featured listings
	SearchHandler *handlers.SearchHandler

	// InterestHandler manages interests between profiles
	InterestHandler *handlers.InterestHandler

	// SystemHandler serves health, version and catalog
	SystemHandler *handlers.SystemHandler
}

// Server represents the API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db is the PostgreSQL pool; nil when the memory driver is selected
	Db *database.Pool

	// Store bundles the repositories of the selected backend
	Store *repository.Store

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// Metrics is nil when metrics are disabled
	Metrics *middleware.Metrics

	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	limiter    *ratelimit.Store
	version    handlers.VersionInfo

	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - ctx: Bounds storage connection, migrations and seeding
//   - cfg: Application configuration
//   - version: Build information reported by /version and /health
//
// Returns:
//   - A fully initialized Server ready to Run
//   - An error if any component fails to initialize
func NewServer(ctx context.Context, cfg *config.AppConfig, version handlers.VersionInfo) (*Server, error) {
	if version.Version == "" {
		version.Version = cfg.App.Version
	}
	if version.Environment == "" {
		version.Environment = cfg.App.Environment
	}

	s := &Server{
		Config:     cfg,
		version:    version,
		jwtService: auth.NewJWTService(&cfg.JWT),
		hasher:     auth.NewPasswordHasher(auth.ConfigFromAppConfig(cfg)),
	}

	if cfg.Metrics.Enabled {
		s.Metrics = middleware.NewMetrics()
	}

	if cfg.RateLimit.Enabled {
		s.limiter = newLimiterStore(cfg.RateLimit)
	}

	if err := s.setupStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up storage: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// newLimiterStore builds the per-client limiter store. Auth endpoints get a
// quarter of the general budget to slow down credential guessing.
func newLimiterStore(cfg config.RateLimitSettings) *ratelimit.Store {
	store := ratelimit.NewStore(
		ratelimit.Rate{RequestsPerSecond: cfg.RequestsPerSecond, Burst: cfg.Burst},
		constants.RateLimitCleanupInterval,
		constants.RateLimitIdleExpiry,
	)

	authBurst := cfg.Burst / 4
	if authBurst < 1 {
		authBurst = 1
	}
	store.SetRate(constants.RateCategoryAuth, ratelimit.Rate{
		RequestsPerSecond: cfg.RequestsPerSecond / 4,
		Burst:             authBurst,
	})
	return store
}

// setupStorage selects the backend, runs migrations for PostgreSQL and seeds
// demo data when configured.
func (s *Server) setupStorage(ctx context.Context) error {
	if s.Config.Database.IsPostgres() {
		db, err := database.Connect(ctx, s.Config)
		if err != nil {
			return err
		}
		s.Db = db

		if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		s.Store = repository.NewPostgresStore(db)
	} else {
		s.Store = repository.NewMemoryStore()
	}

	log.Info().Str("driver", s.Config.Database.Driver).Msg("Storage ready")

	if !s.Config.Database.Seed {
		return nil
	}

	seeder := scripts.NewSeeder(s.Store, s.hasher, astrology.NewMockCalculator())
	if _, err := seeder.SeedDatabase(ctx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// setupHandlers wires services into handlers.
func (s *Server) setupHandlers() {
	var observer service.SearchObserver
	if s.Metrics != nil {
		observer = s.Metrics
	}

	authService := service.NewAuthService(s.Store.Users, s.hasher, s.jwtService)
	profileService := service.NewProfileService(s.Store.Profiles, astrology.NewMockCalculator(), nil)
	searchService := service.NewSearchService(s.Store.Profiles, s.Config.Search, observer)
	interestService := service.NewInterestService(s.Store.Interests, s.Store.Profiles)
	healthService := service.NewHealthService(s.Store, s.Config.Database.Driver, s.version.Version)

	s.Handlers = &Handlers{
		AuthHandler:     handlers.NewAuthHandler(authService),
		ProfileHandler:  handlers.NewProfileHandler(profileService),
		SearchHandler:   handlers.NewSearchHandler(searchService),
		InterestHandler: handlers.NewInterestHandler(interestService),
		SystemHandler:   handlers.NewSystemHandler(healthService, s.version),
	}
}

// GetRouter returns the configured router
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully. SIGHUP rotates the log file.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("address", s.httpServer.Addr).
			Msg("Starting server")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		for {
			select {
			case <-hup:
				if err := utils.RotateLogFile(); err != nil {
					log.Error().Err(err).Msg("Failed to rotate log file")
				}
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			// Shutdown the server immediately if graceful shutdown fails
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown gracefully stops the HTTP server, then releases the limiter and
// database resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")

	s.Close()
	return nil
}

// Close releases background resources without touching the HTTP listener.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}
}

package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/vivahmatch/backend/internal/auth"
	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/middleware"
	"github.com/vivahmatch/backend/internal/utils"
)

// RouteInfo describes one registered endpoint
type RouteInfo struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
}

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
//   - Health, version and metrics endpoints (unprotected, never rate limited)
//   - Catalog and route listing
//   - Authentication endpoints (signup, login, current account)
//   - Profile search and featured listings (optionally authenticated)
//   - Profile creation and updates (authenticated)
//   - Interests (authenticated)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
	}
	r.Use(newCORS(s.Config.CORS).Handler)
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	jwtProvider := auth.NewJWTAuthProvider(s.jwtService)
	requireAuth := auth.RequireAuth(jwtProvider)
	optionalAuth := auth.OptionalAuth(jwtProvider)

	// Health check and version routes (unprotected)
	r.Get(constants.HealthPath, s.Handlers.SystemHandler.Health)
	r.Get(constants.VersionPath, s.Handlers.SystemHandler.Version)
	if s.Metrics != nil {
		r.Method(http.MethodGet, s.Config.Metrics.Path, s.Metrics.Handler())
	}

	// API routes
	r.Route(constants.APIBasePath, func(r chi.Router) {
		r.Use(s.rateLimit(constants.RateCategoryAPI))

		r.Get("/catalog", s.Handlers.SystemHandler.Catalog)
		r.Get("/routes", s.GetAPIRoutes)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(s.rateLimit(constants.RateCategoryAuth))
				r.Post("/signup", s.Handlers.AuthHandler.Register)
				r.Post("/login", s.Handlers.AuthHandler.Login)
			})

			r.With(requireAuth).Get("/me", s.Handlers.AuthHandler.Me)
		})

		r.Route("/profiles", func(r chi.Router) {
			// Public reads; a valid token personalises the result
			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Post("/search", s.Handlers.SearchHandler.SearchProfiles)
				r.Get("/featured", s.Handlers.SearchHandler.FeaturedProfiles)
				r.Get("/featured/{"+constants.ParamLimit+"}", s.Handlers.SearchHandler.FeaturedProfiles)
				r.Get("/{"+constants.ParamProfileID+"}", s.Handlers.ProfileHandler.GetProfile)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", s.Handlers.ProfileHandler.CreateProfile)
				r.Get("/me", s.Handlers.ProfileHandler.GetMyProfile)
				r.Patch("/{"+constants.ParamProfileID+"}", s.Handlers.ProfileHandler.UpdateProfile)
			})
		})

		r.Route("/interests", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", s.Handlers.InterestHandler.SendInterest)
			r.Get("/received", s.Handlers.InterestHandler.ListReceived)
			r.Get("/sent", s.Handlers.InterestHandler.ListSent)
			r.Patch("/{"+constants.ParamInterestID+"}", s.Handlers.InterestHandler.RespondToInterest)
		})
	})

	s.router = r
}

// rateLimit returns the limiter middleware for category, or a pass-through
// when rate limiting is disabled.
func (s *Server) rateLimit(category string) func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(s.limiter, category)
}

// newCORS builds the CORS handler. A wildcard origin cannot be combined with
// credentials, so credentials are only allowed for explicit origins.
func newCORS(cfg config.CORSSettings) *cors.Cors {
	allowCredentials := cfg.AllowCredentials
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders: []string{
			constants.HeaderAuthorization, constants.HeaderContentType, constants.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}

// GetAPIRoutes lists every registered endpoint, sorted by pattern then method.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	var routes []RouteInfo
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		// chi reports subrouter roots with a trailing slash
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		routes = append(routes, RouteInfo{Method: method, Pattern: route})
		return nil
	})
	if err != nil {
		utils.InternalServerError(w, err)
		return
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})

	utils.List(w, routes, len(routes))
}

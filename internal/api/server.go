// Package api provides the HTTP API server and handlers for the
// ismism catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/desperati0n/ismism/internal/http/response"
	"github.com/desperati0n/ismism/internal/ratelimit"
	"github.com/desperati0n/ismism/internal/service"
	"github.com/desperati0n/ismism/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalogService     *service.CatalogService
	interactionService *service.InteractionService
	validator          *validation.Validator
	writeLimiter       *ratelimit.KeyedRateLimiter
	router             *chi.Mux
	logger             *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// writeLimiter throttles mutating endpoints per client IP; nil
// disables throttling.
func NewServer(catalogService *service.CatalogService, interactionService *service.InteractionService, writeLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		catalogService:     catalogService,
		interactionService: interactionService,
		validator:          validation.New(),
		writeLimiter:       writeLimiter,
		router:             chi.NewRouter(),
		logger:             logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The browser UI is served from a separate origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Catalog (read only).
		r.Route("/isms", func(r chi.Router) {
			r.Get("/", s.handleListIsms)
			r.Get("/search", s.handleSearchByCode)
			r.Get("/{code}", s.handleGetIsm)

			// Interactions attached to one entry.
			r.Route("/{code}/likes", func(r chi.Router) {
				r.Get("/", s.handleGetLikes)
				r.With(s.writeLimit).Post("/toggle", s.handleToggleLike)
			})

			r.Route("/{code}/comments", func(r chi.Router) {
				r.Get("/", s.handleGetComments)
				r.With(s.writeLimit).Post("/", s.handleAddComment)

				r.Route("/{commentID}", func(r chi.Router) {
					r.With(s.writeLimit).Delete("/", s.handleDeleteComment)
					r.With(s.writeLimit).Post("/like", s.handleToggleCommentLike)

					r.Route("/replies", func(r chi.Router) {
						r.With(s.writeLimit).Post("/", s.handleAddReply)
						r.With(s.writeLimit).Delete("/{replyID}", s.handleDeleteReply)
						r.With(s.writeLimit).Post("/{replyID}/like", s.handleToggleReplyLike)
					})
				})
			})
		})

		// Full-text keyword search.
		r.Get("/search", s.handleKeywordSearch)

		// Viewer identity.
		r.Route("/me", func(r chi.Router) {
			r.Get("/", s.handleGetCurrentUser)
			r.With(s.writeLimit).Put("/", s.handleRenameCurrentUser)
		})
	})
}

// writeLimit throttles mutating requests per client IP.
func (s *Server) writeLimit(next http.Handler) http.Handler {
	if s.writeLimiter == nil {
		return next
	}
	return RateLimitMiddleware(s.writeLimiter, s.logger)(next)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

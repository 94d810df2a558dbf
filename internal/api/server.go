package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/techpazar/storefront/internal/cart"
	"github.com/techpazar/storefront/internal/catalog"
	"github.com/techpazar/storefront/internal/config"
	"github.com/techpazar/storefront/internal/storage"
)

// Server represents the storefront HTTP API server.
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	catalog  *catalog.Store
	pipeline *catalog.Pipeline
	carts    *cart.Store
	repo     storage.CartRepository
	session  *SessionMiddleware
}

// NewServer creates a new API server.
func NewServer(
	cfg config.ServerConfig,
	cat *catalog.Store,
	pipeline *catalog.Pipeline,
	carts *cart.Store,
	repo storage.CartRepository,
) *Server {
	s := &Server{
		config:   cfg,
		catalog:  cat,
		pipeline: pipeline,
		carts:    carts,
		repo:     repo,
		session:  NewSessionMiddleware(),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration: the SPA is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", SessionHeader},
		ExposedHeaders:   []string{"X-Request-ID", SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (public, outside versioned API)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", s.handleListCategories)
		r.Get("/products", s.handleListProducts)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Get("/resolve", s.handleResolve)

		// Cart routes are session-scoped
		r.Route("/cart", func(r chi.Router) {
			r.Use(s.session.EnsureSession)

			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleAddItem)
			r.Patch("/items/{productID}", s.handleAdjustItem)
			r.Delete("/items/{productID}", s.handleRemoveItem)
			r.Get("/watch", s.handleCartWatch)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

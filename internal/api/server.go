// Package api provides the HTTP API server and handlers for the BookValley storefront.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JeelMungra28/BookValley/internal/auth"
	"github.com/JeelMungra28/BookValley/internal/config"
	"github.com/JeelMungra28/BookValley/internal/ratelimit"
	"github.com/JeelMungra28/BookValley/internal/service"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	tokenService    *auth.TokenService
	authService     *service.AuthService
	cartService     *service.CartService
	wishlistService *service.WishlistService
	searchService   *service.SearchService
	catalogService  *service.CatalogService
	loginLimiter    *ratelimit.KeyedRateLimiter
	allowedOrigins  []string
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	store *store.Store,
	tokenService *auth.TokenService,
	authService *service.AuthService,
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	searchService *service.SearchService,
	catalogService *service.CatalogService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:           store,
		tokenService:    tokenService,
		authService:     authService,
		cartService:     cartService,
		wishlistService: wishlistService,
		searchService:   searchService,
		catalogService:  catalogService,
		loginLimiter:    ratelimit.New(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst),
		allowedOrigins:  cfg.CORS.AllowedOrigins,
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.With(s.rateLimitByIP(s.loginLimiter)).Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		// Current user.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
		})

		// Catalog: reads public, writes admin-only.
		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Get("/{id}", s.handleGetBook)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.handleCreateBook)
				r.Patch("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Get("/{id}", s.handleGetCategory)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireAdmin)
				r.Post("/", s.handleCreateCategory)
			})
		})

		// Cart (per authenticated user).
		r.Route("/cart", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetCart)
			r.Post("/", s.handleAddCartItem)
			r.Delete("/", s.handleClearCart)
			r.Put("/{bookID}", s.handleUpdateCartItem)
			r.Delete("/{bookID}", s.handleRemoveCartItem)
		})

		// Wishlist (per authenticated user).
		r.Route("/wishlist", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetWishlist)
			r.Post("/", s.handleAddWishlistEntry)
			r.Delete("/{bookID}", s.handleRemoveWishlistEntry)
			r.Get("/check/{bookID}", s.handleCheckWishlist)
		})

		// Search (public).
		r.Get("/search", s.handleSearch)
	})
}

// Package console serves a local admin console over HTTP.
//
// Every navigation rehydrates the session from storage and asks the guard
// whether the route may render. Pages are JSON snapshots of the stores; the
// visual layer lives elsewhere.
package console

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
)

// UserLister lists every user of the storefront.
type UserLister interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Options configures the console.
type Options struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server is the console's HTTP handler.
type Server struct {
	session *session.Store
	catalog *resource.Catalog
	users   UserLister
	origins []string
	router  *chi.Mux
	logger  *slog.Logger
}

// NewServer wires the console routes over the given stores.
func NewServer(sess *session.Store, catalog *resource.Catalog, users UserLister, opts Options) *Server {
	s := &Server{
		session: sess,
		catalog: catalog,
		users:   users,
		origins: opts.AllowedOrigins,
		router:  chi.NewRouter(),
		logger:  logger.OrDiscard(opts.Logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	if len(s.origins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         300,
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	// Every page below is a navigation: rehydrate first.
	s.router.Group(func(r chi.Router) {
		r.Use(s.loadSession)

		r.Get("/", s.handleHome)
		r.Get("/home", s.handleHome)
		r.Get("/about", s.handleAbout)
		r.Get("/contact", s.handleContact)
		r.Get("/session", s.handleSession)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.guestOnly)
			r.Get("/login", s.handleLoginPage)
			r.Post("/login", s.handleLogin)
			r.Get("/register", s.handleRegisterPage)
			r.Post("/register", s.handleRegister)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireRole(domain.RoleAdmin))

			r.Get("/", s.handleDashboard)
			r.Get("/users", s.handleListUsers)

			r.Route("/tags", mountResource(s, s.catalog.Tags))
			r.Route("/categories", mountResource(s, s.catalog.Categories))
			r.Route("/article-categories", mountResource(s, s.catalog.ArticleCategories))
			r.Route("/colors", mountResource(s, s.catalog.Colors))
			r.Route("/brands", mountResource(s, s.catalog.Brands))
		})
	})
}

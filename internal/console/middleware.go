package console

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/guard"
	"github.com/storefront/storefront-admin/internal/http/response"
)

// loadSession rehydrates the session before every navigation. A storage
// failure leaves the session anonymous and the request continues.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.session.LoadSession(r.Context()); err != nil {
			s.logger.Warn("Failed to load session", "error", err)
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole applies the guard for role. It must run after loadSession.
func (s *Server) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := guard.Evaluate(s.session.Snapshot(), role, r.URL.RequestURI())
			if s.enforce(w, decision) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// guestOnly sends signed-in users away from the login and registration pages.
func (s *Server) guestOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.enforce(w, guard.EvaluateGuestOnly(s.session.Snapshot())) {
			next.ServeHTTP(w, r)
		}
	})
}

// enforce writes the response for a non-Allow decision and reports whether
// the request may proceed.
func (s *Server) enforce(w http.ResponseWriter, d guard.Decision) bool {
	switch d.Kind {
	case guard.Allow:
		return true
	case guard.Pending:
		w.Header().Set("Retry-After", "1")
		response.JSON(w, http.StatusAccepted, map[string]any{"decision": d}, s.logger)
		return false
	default:
		response.Redirect(w, d.Location(), map[string]any{"decision": d}, s.logger)
		return false
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("console request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

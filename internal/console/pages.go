package console

import (
	"net/http"
	"time"

	"github.com/storefront/storefront-admin/internal/color"
	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/http/response"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
)

// sessionView is the public projection of the session. The token never leaves the process.
type sessionView struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Phase           session.Phase `json:"phase"`
	Role            string        `json:"role,omitempty"`
	Name            string        `json:"name,omitempty"`
	Email           string        `json:"email,omitempty"`
	Photo           string        `json:"photo,omitempty"`
	AvatarColor     string        `json:"avatarColor,omitempty"`
	IsLoading       bool          `json:"isLoading"`
	Error           string        `json:"error,omitempty"`
	TokenExpiresAt  *time.Time    `json:"tokenExpiresAt,omitempty"`
}

func (s *Server) sessionView() sessionView {
	st := s.session.Snapshot()
	v := sessionView{
		IsAuthenticated: st.IsAuthenticated(),
		Phase:           st.Phase(),
		Role:            string(st.Role()),
		Name:            st.Name(),
		Email:           st.Email(),
		Photo:           st.Photo(),
		IsLoading:       st.IsLoading,
		Error:           st.Error,
	}
	if v.IsAuthenticated && v.Photo == "" {
		v.AvatarColor = color.ForUser(v.Email)
	}
	if exp, ok := s.session.TokenExpiry(); ok {
		v.TokenExpiresAt = &exp
	}
	return v
}

type page struct {
	Page    string      `json:"page"`
	Session sessionView `json:"session"`
	Data    any         `json:"data,omitempty"`
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	response.Success(w, page{Page: name, Session: s.sessionView(), Data: data}, s.logger)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, "home", nil)
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, "about", nil)
}

func (s *Server) handleContact(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, "contact", nil)
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.sessionView(), s.logger)
}

type resourceSummary struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Status string `json:"status"`
	Cached int    `json:"cached"`
	Error  string `json:"error,omitempty"`
}

func summarize[T domain.Entity, I any](store *resource.Store[T, I]) resourceSummary {
	snap := store.Snapshot()
	return resourceSummary{
		Name:   store.Name(),
		Label:  store.Labels().Plural,
		Status: string(snap.Status),
		Cached: len(snap.Items),
		Error:  snap.Error,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	c := s.catalog
	s.renderPage(w, "dashboard", []resourceSummary{
		summarize(c.Tags),
		summarize(c.Categories),
		summarize(c.ArticleCategories),
		summarize(c.Colors),
		summarize(c.Brands),
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, users, s.logger)
}

package console

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/guard"
	"github.com/storefront/storefront-admin/internal/http/response"
)

const invalidBodyMessage = "بدنه درخواست معتبر نیست."

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "login", map[string]string{"from": returnPath(r)})
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, "register", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		response.BadRequest(w, invalidBodyMessage, s.logger)
		return
	}

	if err := s.session.Login(r.Context(), creds); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.renderPage(w, "login", map[string]string{"redirect": returnPath(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, invalidBodyMessage, s.logger)
		return
	}

	err := s.session.Register(r.Context(), domain.Registration{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.renderPage(w, "register", map[string]string{"redirect": guard.HomePath})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(r.Context()); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Redirect(w, guard.HomePath, s.sessionView(), s.logger)
}

// returnPath is the local path to go back to after signing in.
func returnPath(r *http.Request) string {
	from := r.URL.Query().Get("from")
	// Only local absolute paths; never "//host" or a full URL.
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return guard.HomePath
	}
	return from
}

// Package guard decides whether a navigation may render.
//
// Decisions are computed from the session state at the moment of navigation
// and must not be cached: the session can change between renders.
package guard

import (
	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/session"
)

// Kind is the outcome of a guard evaluation.
type Kind string

const (
	// Pending means the session is loading; render a placeholder and ask again.
	Pending         Kind = "pending"
	Allow           Kind = "allow"
	RedirectToLogin Kind = "redirect_to_login"
	RedirectHome    Kind = "redirect_home"
)

// Paths the redirects point at.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is a guard outcome. From holds the originally requested path on a
// login redirect so the caller can return there after signing in.
type Decision struct {
	Kind Kind   `json:"kind"`
	From string `json:"from,omitempty"`
}

// Location returns the redirect target, or "" when the decision is not a redirect.
func (d Decision) Location() string {
	switch d.Kind {
	case RedirectToLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	default:
		return ""
	}
}

// Evaluate applies, in order: loading, authentication, role. An empty
// requiredRole only requires authentication.
func Evaluate(state session.State, requiredRole domain.Role, path string) Decision {
	switch {
	case state.IsLoading:
		return Decision{Kind: Pending}
	case !state.IsAuthenticated():
		return Decision{Kind: RedirectToLogin, From: path}
	case requiredRole != "" && state.Role() != requiredRole:
		return Decision{Kind: RedirectHome}
	default:
		return Decision{Kind: Allow}
	}
}

// EvaluateGuestOnly guards pages only anonymous users should see, such as
// the login and registration forms. Signed-in users are sent home.
func EvaluateGuestOnly(state session.State) Decision {
	switch {
	case state.IsLoading:
		return Decision{Kind: Pending}
	case state.IsAuthenticated():
		return Decision{Kind: RedirectHome}
	default:
		return Decision{Kind: Allow}
	}
}

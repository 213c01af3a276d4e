package session

import "github.com/storefront/storefront-admin/internal/domain"

// Phase is the session-level state shown to the user.
type Phase string

const (
	PhaseAnonymous     Phase = "anonymous"
	PhaseLoading       Phase = "loading"
	PhaseAuthenticated Phase = "authenticated"
	PhaseError         Phase = "error"
)

// State is a snapshot of the session. Authorization facts are derived from
// Token and User, never stored separately.
type State struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"-"`
	IsLoading bool         `json:"isLoading"`
	Error     string       `json:"error,omitempty"`
}

// IsAuthenticated reports whether the session holds a non-empty token.
func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

// Role returns the user's role, or "" when anonymous.
func (s State) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Name returns the user's display name.
func (s State) Name() string {
	if s.User == nil {
		return ""
	}
	return s.User.Name
}

// Email returns the user's email.
func (s State) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// Photo returns the user's photo URL.
func (s State) Photo() string {
	if s.User == nil {
		return ""
	}
	return s.User.Photo
}

// Phase derives the session-level state. An in-flight request wins over a
// stale error, and an error wins over whatever the session fields say.
func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	case s.IsAuthenticated():
		return PhaseAuthenticated
	default:
		return PhaseAnonymous
	}
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

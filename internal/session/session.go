// Package session holds the authenticated identity of the admin client.
//
// The Store mirrors two persisted keys (token and user) and keeps them in
// lockstep: they are written together, read together and erased together.
// Memory is only changed after storage accepted the change.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/storefront-admin/internal/client"
	"github.com/storefront/storefront-admin/internal/domain"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/storage"
	"github.com/storefront/storefront-admin/internal/validation"
)

// Authenticator performs the login and registration calls.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
}

// Store is the session store. Create one per process.
type Store struct {
	mu    sync.RWMutex
	state State

	storage   storage.Storage
	auth      Authenticator
	validator *validation.Validator
	logger    *slog.Logger
}

// New creates an empty (anonymous) store. Call LoadSession to rehydrate.
func New(st storage.Storage, auth Authenticator, log *slog.Logger) *Store {
	return &Store{
		storage:   st,
		auth:      auth,
		validator: validation.New(),
		logger:    logger.OrDiscard(log),
	}
}

// PersistedToken returns a token source that reads the token from storage on
// every call, not from memory. A client built on it keeps sending a token
// until storage is cleared, even if the in-memory session was reset.
func PersistedToken(st storage.Storage) client.TokenFunc {
	return func(ctx context.Context) (string, error) {
		tok, _, err := st.Get(ctx, storage.KeyAccessToken)
		return tok, err
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Phase returns the current session-level state.
func (s *Store) Phase() Phase {
	return s.Snapshot().Phase()
}

// LoadSession rehydrates the session from storage. Both keys present and
// readable yields an authenticated session; anything else yields an anonymous
// one, and partial or corrupt data is erased. IsLoading and Error are left
// alone so a concurrent login keeps its status. Safe to call repeatedly.
func (s *Store) LoadSession(ctx context.Context) error {
	values, err := s.storage.GetMany(ctx, storage.KeyAccessToken, storage.KeyUserData)
	if err != nil {
		s.setIdentity(nil, "")
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "read session")
	}

	token, hasToken := values[storage.KeyAccessToken]
	raw, hasUser := values[storage.KeyUserData]

	if !hasToken && !hasUser {
		s.setIdentity(nil, "")
		return nil
	}

	var user domain.User
	valid := hasToken && hasUser && token != "" && json.Unmarshal([]byte(raw), &user) == nil
	if !valid {
		s.logger.Warn("Discarding partial session from storage",
			"has_token", hasToken,
			"has_user", hasUser,
		)
		s.setIdentity(nil, "")
		if err := s.storage.DeleteMany(ctx, storage.KeyAccessToken, storage.KeyUserData); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "clear partial session")
		}
		return nil
	}

	s.setIdentity(&user, token)
	return nil
}

// SetSession persists user and token together, then updates memory. An empty
// token means "no token": the session becomes anonymous and storage is erased.
func (s *Store) SetSession(ctx context.Context, user *domain.User, token string) error {
	if token == "" || user == nil {
		if err := s.storage.DeleteMany(ctx, storage.KeyAccessToken, storage.KeyUserData); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "clear session")
		}
		s.setIdentity(nil, "")
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "encode user")
	}

	err = s.storage.SetMany(ctx, map[string]string{
		storage.KeyAccessToken: token,
		storage.KeyUserData:    string(data),
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "persist session")
	}

	u := *user
	s.setIdentity(&u, token)
	return nil
}

// Logout erases storage and then clears the session. If storage cannot be
// erased the session is left as it was.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.storage.DeleteMany(ctx, storage.KeyAccessToken, storage.KeyUserData); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "clear session")
	}

	s.mu.Lock()
	s.state.User = nil
	s.state.Token = ""
	s.state.Error = ""
	s.mu.Unlock()

	s.logger.Info("Logged out")
	return nil
}

// Login validates creds, calls the API and stores the result. A failure sets
// Error but leaves any existing session untouched.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) error {
	if err := s.validator.Validate(creds); err != nil {
		return err
	}
	return s.authenticate(ctx, LoginFailedMessage, func() (*domain.AuthResult, error) {
		return s.auth.Login(ctx, creds)
	})
}

// Register validates the form, calls the API and stores the result.
func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.validator.Validate(reg); err != nil {
		return err
	}
	return s.authenticate(ctx, RegisterFailedMessage, func() (*domain.AuthResult, error) {
		return s.auth.Register(ctx, reg)
	})
}

func (s *Store) authenticate(ctx context.Context, fallback string, call func() (*domain.AuthResult, error)) error {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	res, err := call()
	if err != nil {
		msg := localize(err, fallback)
		s.finish(msg)
		s.logger.Debug("Authentication failed", "error", err)
		return domainerrors.Wrap(err, authFailureCode(err), msg)
	}

	if err := s.SetSession(ctx, res.User, res.AccessToken); err != nil {
		s.finish(PersistFailedMessage)
		return err
	}

	s.finish("")
	s.logger.Info("Authenticated", "user_id", res.User.ID, "role", res.User.Role)
	return nil
}

// authFailureCode keeps TRANSPORT for failures that say nothing about the
// credentials: an unreachable server or a 5xx answer.
func authFailureCode(err error) domainerrors.Code {
	if status, ok := domainerrors.StatusOf(err); ok && (status == 0 || status >= 500) {
		return domainerrors.CodeTransport
	}
	return domainerrors.CodeAuthentication
}

func (s *Store) finish(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	s.state.Error = errMsg
}

func (s *Store) setIdentity(user *domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.Token = token
}

// TokenExpiry returns the exp claim of the current token, read without
// verification. The server is the only authority on token validity; this is
// for display.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Snapshot().Token
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

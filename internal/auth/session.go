// Package auth holds the admin session: a bearer token and the profile it
// belongs to, persisted through the kvstore bridge. Token and user are set
// and cleared together; a token without a user (or the reverse) is treated
// as no session at all.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"fiesta-storefront/internal/api"
	"fiesta-storefront/internal/domain"
	"fiesta-storefront/internal/kvstore"
)

// ErrInvalidCredentials is the fallback when the backend rejects a login
// without a message of its own.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Session struct {
	mu    sync.Mutex
	api   *api.Client
	store kvstore.Store
	token string
	user  *domain.User
	ready bool

	logger *log.Logger
}

// NewSession hydrates once from the bridge and marks itself ready, whatever
// the outcome. Callers must treat a not-ready session as unknown state
// rather than logged out.
func NewSession(client *api.Client, store kvstore.Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{api: client, store: store, logger: logger}
	s.hydrate()
	s.ready = true
	return s
}

func (s *Session) hydrate() {
	rawToken, okToken := s.store.Get(kvstore.KeyAuthToken)
	rawUser, okUser := s.store.Get(kvstore.KeyAuthUser)
	if !okToken || !okUser {
		return
	}
	var user domain.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Printf("auth: discarding malformed stored user: %v", err)
		return
	}
	token := string(rawToken)
	if token == "" || user.ID == "" {
		return
	}
	s.token = token
	s.user = &user
}

// Ready reports whether the initial hydration read has completed.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Token returns the current bearer token or "". Implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current profile, or nil when logged out.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a complete session is present.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Login exchanges credentials for a session. A rejected login leaves the
// current state untouched; the returned error carries the backend's message
// when one was sent.
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return loginError(err)
	}
	s.apply(res.AccessToken, res.User)
	return nil
}

// Register creates an account and logs straight into it.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	res, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	s.apply(res.AccessToken, res.User)
	return nil
}

// Logout clears memory and persisted state. Purely local, no server call.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.store.Clear(kvstore.KeyAuthToken)
	s.store.Clear(kvstore.KeyAuthUser)
}

// SetUser replaces the profile after an edit; the token stays as it is.
func (s *Session) SetUser(user domain.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	if data, err := json.Marshal(user); err == nil {
		s.store.Set(kvstore.KeyAuthUser, data)
	}
}

// Profile fetches the server-side profile for the current token.
func (s *Session) Profile(ctx context.Context) (*domain.User, error) {
	return s.api.Me(ctx)
}

// UpdateProfile patches the server-side profile and mirrors the result into
// the session.
func (s *Session) UpdateProfile(ctx context.Context, patch api.ProfilePatch) (*domain.User, error) {
	user, err := s.api.UpdateMe(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.SetUser(*user)
	return user, nil
}

func (s *Session) apply(token string, user domain.User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.store.Set(kvstore.KeyAuthToken, []byte(token))
	if data, err := json.Marshal(user); err == nil {
		s.store.Set(kvstore.KeyAuthUser, data)
	}
}

// loginError keeps a backend-sent message intact and substitutes the generic
// fallback only when the response body had none.
func loginError(err error) error {
	var herr *domain.HTTPError
	if errors.As(err, &herr) && herr.Message == "" {
		return ErrInvalidCredentials
	}
	return err
}

// Package session holds the current user and bearer token as an
// explicit object with a defined lifecycle: load the persisted token,
// validate it against the identity endpoint, tear everything down on
// logout. It is passed to the REST client as its token source instead of
// living in ambient global state.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"finzen/internal/api"
	"finzen/internal/log"
)

// AuthAPI is the slice of the REST client the session lifecycle needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (api.Token, error)
	Me(ctx context.Context) (api.User, error)
	Logout(ctx context.Context) error
}

type Session struct {
	path string
	auth AuthAPI

	mu    sync.Mutex
	token string
	user  *api.User
}

// New creates a session backed by the token file at path. An existing
// token is loaded but not validated; call Hydrate for that.
func New(path string) *Session {
	s := &Session{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// Attach wires the auth endpoints. Separate from New because the REST
// client needs the session as its token source first.
func (s *Session) Attach(auth AuthAPI) {
	s.auth = auth
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached identity, or nil before Hydrate/Login.
func (s *Session) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Hydrate validates the persisted token via the identity endpoint and
// caches the user. A rejected token clears the session so the caller can
// route to login.
func (s *Session) Hydrate(ctx context.Context) (api.User, error) {
	if s.Token() == "" {
		return api.User{}, api.ErrNotAuthenticated
	}
	user, err := s.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			s.clear(ctx)
		}
		return api.User{}, fmt.Errorf("hydrate session: %w", err)
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// Login exchanges credentials for a token, persists it and caches the
// user.
func (s *Session) Login(ctx context.Context, email, password string) (api.User, error) {
	tok, err := s.auth.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return api.User{}, err
	}
	s.mu.Lock()
	s.token = tok.AccessToken
	s.user = &tok.User
	s.mu.Unlock()

	if err := s.persist(tok.AccessToken); err != nil {
		// The session still works in memory; only persistence failed.
		slog.WarnContext(ctx, "failed to persist session token", log.FieldPath, s.path, log.FieldError, err)
	}
	return tok.User, nil
}

// Logout revokes the token server-side, then clears the token file and
// in-memory user regardless of the call's outcome.
func (s *Session) Logout(ctx context.Context) error {
	var err error
	if s.Token() != "" && s.auth != nil {
		err = s.auth.Logout(ctx)
	}
	s.clear(ctx)
	if err != nil && !errors.Is(err, api.ErrNotAuthenticated) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Session) persist(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *Session) clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.WarnContext(ctx, "failed to remove token file", log.FieldPath, s.path, log.FieldError, err)
	}
}

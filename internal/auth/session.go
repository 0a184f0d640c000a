// Package auth keeps the logged-in state of the console user and guards the
// commands that need it.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

// Backend ends the server side of a session.
type Backend interface {
	Logout(ctx context.Context) error
}

// TokenSink receives the token to send with backend requests.
type TokenSink interface {
	SetAccessToken(token string)
}

// Session is the only place authentication state changes; Login and
// Logout are its mutators.
type Session struct {
	store   Store
	backend Backend
	sink    TokenSink
	now     func() time.Time

	mu    sync.RWMutex
	email string
	token string
	role  string
}

func NewSession(store Store, backend Backend, sink TokenSink) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{store: store, backend: backend, sink: sink, now: time.Now}
}

// Restore picks up a saved session. An expired token ends it.
func (s *Session) Restore() error {
	st, err := s.store.Load()
	if err != nil {
		return err
	}
	if st.Email == "" {
		return nil
	}
	if st.Token != "" {
		if _, err := ParseClaims(st.Token, s.now()); err != nil {
			if IsExpired(err) {
				logger.L().Info("saved session expired", zap.String("email", st.Email))
			} else {
				logger.L().Warn("saved session dropped", zap.Error(err))
			}
			return s.store.Clear()
		}
	}

	s.mu.Lock()
	s.email, s.token, s.role = st.Email, st.Token, st.Role
	s.mu.Unlock()
	if st.Token != "" {
		s.pushToken(st.Token)
	}
	return nil
}

// Login marks email as logged in. Credentials are checked by the backend,
// not here. The token and role of a user already logged in are dropped; a
// role set before any login is kept.
func (s *Session) Login(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}

	s.mu.Lock()
	replaced := s.email != ""
	if replaced {
		s.token, s.role = "", ""
	}
	s.email = email
	st := s.state()
	s.mu.Unlock()

	if replaced {
		s.pushToken("")
	}
	return s.store.Save(st)
}

// LoginWithToken logs in with a backend access token. The role comes from
// its claims, and an empty email is taken from them too.
func (s *Session) LoginWithToken(email, token string) error {
	token = NormalizeToken(token)
	claims, err := ParseClaims(token, s.now())
	if err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		email = claims.Email
	}
	if email == "" {
		return ErrInvalidEmail
	}

	s.mu.Lock()
	s.email, s.token, s.role = email, token, claims.Role
	st := s.state()
	s.mu.Unlock()

	s.pushToken(token)
	return s.store.Save(st)
}

// SetRole overrides the role, e.g. from the profile or a command line flag.
func (s *Session) SetRole(role string) {
	s.mu.Lock()
	s.role = strings.TrimSpace(role)
	st := s.state()
	authed := s.email != ""
	s.mu.Unlock()

	if authed {
		if err := s.store.Save(st); err != nil {
			logger.L().Warn("failed to save session", zap.Error(err))
		}
	}
}

// Logout tells the backend and then forgets the session locally whatever
// the backend answered. The backend error is returned for reporting.
func (s *Session) Logout(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "auth"),
		zap.String("method", "Logout"),
	)

	var err error
	if s.backend != nil {
		if err = s.backend.Logout(ctx); err != nil {
			log.Warn("backend logout failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.email, s.token, s.role = "", "", ""
	s.mu.Unlock()
	s.pushToken("")

	if cerr := s.store.Clear(); cerr != nil {
		log.Error("failed to clear session", zap.Error(cerr))
		if err == nil {
			err = cerr
		}
	}

	log.Info("logged out")
	return err
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email != ""
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email != "" && isAdmin(s.role)
}

// state must be called with s.mu held.
func (s *Session) state() State {
	return State{Email: s.email, Token: s.token, Role: s.role}
}

func (s *Session) pushToken(token string) {
	if s.sink != nil {
		s.sink.SetAccessToken(token)
	}
}

// Package session holds the authenticated state of the client: the access
// token and the profile of the logged-in user.
//
// Token and user are always set and cleared together, in memory and in the
// persistent Storage. Restore is called once at startup; until it has run,
// Hydrated reports false and callers must not treat the session as logged
// out.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyToken = errors.New("session token is empty")

type Store struct {
	storage Storage
	log     logging.Logger

	mu       sync.RWMutex
	token    string
	user     models.UserProfile
	hydrated bool
}

func New(storage Storage, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{storage: storage, log: log}
}

// Login persists token and user, then makes them current. Nothing changes
// when persisting fails.
func (s *Store) Login(ctx context.Context, token string, user models.UserProfile) error {
	if token == "" {
		return ErrEmptyToken
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Save(ctx, token, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token, s.user = token, user
	s.hydrated = true
	s.mu.Unlock()
	return nil
}

// Logout clears the session. The in-memory state is cleared even when the
// persistent state cannot be.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.user = "", models.UserProfile{}
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore loads the persisted session. A session is kept only when it has
// a token and a user with an id; anything else, including an unreadable
// user record, is wiped. The store is hydrated afterwards in every case.
func (s *Store) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.hydrated = true
		s.mu.Unlock()
	}()

	token, raw, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session storage unreadable, starting logged out", logging.Err(err))
		return s.discard(ctx)
	}

	if token == "" && len(raw) == 0 {
		return nil
	}

	var user models.UserProfile
	if token == "" || len(raw) == 0 {
		s.log.Info(ctx, "partial session found, clearing")
		return s.discard(ctx)
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn(ctx, "stored user is malformed, clearing session", logging.Err(err))
		return s.discard(ctx)
	}
	if user.ID.IsZero() {
		s.log.Info(ctx, "stored user has no id, clearing session")
		return s.discard(ctx)
	}

	s.mu.Lock()
	s.token, s.user = token, user
	s.mu.Unlock()
	return nil
}

func (s *Store) discard(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.user = "", models.UserProfile{}
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Hydrated reports whether Restore (or Login) has run.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin reports whether the logged-in user has administrator rights.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user.IsAdmin
}

// Token returns the access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user and whether there is one.
func (s *Store) User() (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// TokenExpiry reads the exp claim of a JWT access token without verifying
// its signature. ok is false for opaque tokens or tokens without exp.
func (s *Store) TokenExpiry() (exp time.Time, ok bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

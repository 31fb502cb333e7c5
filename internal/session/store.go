// Package session owns the client's authentication state: the persisted
// bearer token and the in-memory user profile derived from it. The store
// is the single writer of both; everything else reads.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/emberforge/lifequest/pkg/client"
	"github.com/emberforge/lifequest/pkg/domain"
)

// Status is the session lifecycle state.
type Status int

const (
	// StatusLoading holds from process start until Initialize resolves.
	StatusLoading Status = iota
	// StatusAuthenticated means a token exists and the profile probe succeeded.
	StatusAuthenticated
	// StatusAnonymous means no usable token exists.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Store holds the current session. The user is present iff the status
// is authenticated; a missing token forces anonymous.
type Store struct {
	client    *client.Client
	tokenPath string
	log       *zap.Logger

	mu          sync.RWMutex
	status      Status
	user        *domain.User
	initialized bool
}

// NewStore creates a session store persisting its token at tokenPath.
func NewStore(c *client.Client, tokenPath string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		client:    c,
		tokenPath: tokenPath,
		log:       log,
		status:    StatusLoading,
	}
}

// Initialize resolves the loading state exactly once per process: it
// reads the persisted token and probes the profile endpoint with it.
// Any probe failure, including network failure, discards the token and
// leaves the session anonymous.
func (s *Store) Initialize(ctx context.Context) Status {
	s.mu.Lock()
	if s.initialized {
		defer s.mu.Unlock()
		return s.status
	}
	s.initialized = true
	s.mu.Unlock()

	token := s.readToken()
	if token == "" {
		s.setAnonymous()
		return StatusAnonymous
	}
	if tokenExpired(token) {
		s.log.Info("persisted token expired, skipping probe")
		s.clearToken()
		s.setAnonymous()
		return StatusAnonymous
	}

	s.client.SetToken(token)
	user, err := s.client.Profile(ctx)
	if err != nil {
		s.log.Info("profile probe failed", zap.Error(err))
		s.clearToken()
		s.client.SetToken("")
		s.setAnonymous()
		return StatusAnonymous
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = user
	s.mu.Unlock()
	return StatusAuthenticated
}

// Login stores a token and user obtained from a prior auth call. The
// token is persisted before any state transition becomes observable;
// no network round-trip happens here.
func (s *Store) Login(token string, user *domain.User) error {
	if err := s.writeToken(token); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	s.client.SetToken(token)
	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = user
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted token and resets the session to anonymous.
func (s *Store) Logout() {
	s.clearToken()
	s.client.SetToken("")
	s.setAnonymous()
}

// Refresh re-fetches the profile and replaces the in-memory user. A
// failed refresh is treated as an expired session and logs out. Call
// this after any mutation that could change gold, avatar, or level.
func (s *Store) Refresh(ctx context.Context) (*domain.User, error) {
	user, err := s.client.Profile(ctx)
	if err != nil {
		s.log.Info("session refresh failed, logging out", zap.Error(err))
		s.Logout()
		return nil, fmt.Errorf("session.Refresh: %w", err)
	}
	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.mu.Unlock()
	return user, nil
}

// SetUser replaces the in-memory user with one the server just
// returned, without a network call.
func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	if s.status == StatusAuthenticated {
		s.user = user
	}
	s.mu.Unlock()
}

// Status returns the current session status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the current user, or nil when not authenticated.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.status = StatusAnonymous
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) readToken() string {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *Store) writeToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) clearToken() {
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("remove token file", zap.Error(err))
	}
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature. Only a definite past expiry short-circuits the probe;
// anything unreadable is left for the server to judge.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

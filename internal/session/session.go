// Package session holds the authenticated identity and its
// persistence across client restarts. The persisted and in-memory
// copies are resynchronized only at start-up; afterwards every
// operation writes both explicitly.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Shanmukha18/unibuy-client/internal/api"
	"github.com/Shanmukha18/unibuy-client/internal/domain"
	"github.com/Shanmukha18/unibuy-client/internal/dto"
	"github.com/Shanmukha18/unibuy-client/internal/notify"
	"github.com/Shanmukha18/unibuy-client/internal/store"
	"github.com/Shanmukha18/unibuy-client/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Listener is invoked on every identity transition. A nil identity
// means logged out.
type Listener func(identity *domain.Identity)

// Store owns the authenticated identity
type Store struct {
	api      *api.Client
	creds    store.Store
	notifier notify.Notifier
	log      *logger.Logger

	mu        sync.RWMutex
	identity  *domain.Identity
	ready     bool
	listeners []Listener
}

// New creates a session store. Call Initialize before first use.
func New(apiClient *api.Client, creds store.Store, notifier notify.Notifier) *Store {
	return &Store{
		api:      apiClient,
		creds:    creds,
		notifier: notifier,
		log:      logger.Get(),
	}
}

// Initialize restores a persisted session, if any. It never fails the
// caller: a corrupt identity record is treated as logged out, and the
// store is marked ready regardless of outcome.
func (s *Store) Initialize(ctx context.Context) {
	defer s.setReady()

	token, err := s.creds.Get(ctx, store.KeyAccessToken)
	if err != nil || token == "" {
		return
	}
	raw, err := s.creds.Get(ctx, store.KeyIdentity)
	if err != nil || raw == "" {
		return
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.log.Error("failed to parse persisted identity", zap.Error(err))
		s.Logout(ctx)
		return
	}

	if exp, ok := tokenExpiry(token); ok {
		s.log.Info("session restored",
			zap.Int64("user_id", identity.ID),
			zap.Time("token_expiry", exp))
	} else {
		s.log.Info("session restored", zap.Int64("user_id", identity.ID))
	}

	s.setIdentity(&identity)
}

// Login authenticates and persists the session. It reports success or
// failure; every failure is already surfaced through the notifier.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	resp, err := s.api.Login(ctx, &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.notifier.Error(api.ServerMessage(err, "Login failed"))
		return false
	}

	identity := &domain.Identity{ID: resp.UserID, Username: resp.Username}
	identityJSON, err := json.Marshal(identity)
	if err != nil {
		s.notifier.Error("Login failed")
		return false
	}

	if err := s.creds.Set(ctx, store.KeyAccessToken, resp.AccessToken); err != nil {
		s.notifier.Error("Login failed")
		return false
	}
	if err := s.creds.Set(ctx, store.KeyRefreshToken, resp.RefreshToken); err != nil {
		s.notifier.Error("Login failed")
		return false
	}
	if err := s.creds.Set(ctx, store.KeyIdentity, string(identityJSON)); err != nil {
		s.notifier.Error("Login failed")
		return false
	}

	s.setIdentity(identity)
	s.notifier.Success("Login successful!")
	return true
}

// Register creates an account. It does not authenticate; the caller
// logs in afterwards.
func (s *Store) Register(ctx context.Context, username, email, password string) bool {
	err := s.api.Register(ctx, &dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.notifier.Error(api.ServerMessage(err, "Registration failed"))
		return false
	}
	s.notifier.Success("Registration successful! Please login.")
	return true
}

// Logout clears the persisted credentials and the in-memory identity.
// Idempotent.
func (s *Store) Logout(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error("failed to clear persisted session", zap.Error(err))
	}
	s.setIdentity(nil)
	s.notifier.Success("Logged out successfully")
}

// ExpireLocal drops the in-memory identity after the transport layer
// has already purged the persisted session (irrecoverable refresh
// failure). No notification beyond the session-expired message.
func (s *Store) ExpireLocal() {
	s.setIdentity(nil)
	s.notifier.Error("Session expired, please login again")
}

// Current returns the in-memory identity, or nil when logged out
func (s *Store) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsAuthenticated reports whether an identity is in memory
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// Ready reports whether Initialize has completed
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Subscribe registers a listener for identity transitions. Listeners
// run synchronously in the mutating call's flow.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) setIdentity(identity *domain.Identity) {
	s.mu.Lock()
	changed := !identityEqual(s.identity, identity)
	s.identity = identity
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l(identity)
	}
}

func (s *Store) setReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

func identityEqual(a, b *domain.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Username == b.Username
}

// tokenExpiry extracts the expiry claim without verifying the
// signature; the server remains the authority on token validity.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

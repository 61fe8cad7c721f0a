package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/store"
)

const identityPrefix = "auth0_"

// expiryLeeway refreshes tokens slightly before their exp claim so a request
// does not race the deadline.
const expiryLeeway = 30 * time.Second

// RefreshFunc exchanges a refresh token for a new id token.
type RefreshFunc func(ctx context.Context, refreshToken string) (idToken string, err error)

// Session holds the authenticated context for the current user: tokens, the
// resolved user record, and the provider id when the user has the provider
// role. It replaces ad hoc module-level caches; all reads go through it and
// Reset clears everything on logout.
type Session struct {
	mu           sync.RWMutex
	idToken      string
	refreshToken string
	user         *models.User
	providerID   string

	kv      *store.KV
	refresh RefreshFunc
	log     *slog.Logger
	now     func() time.Time
}

func New(kv *store.KV, refresh RefreshFunc, log *slog.Logger) *Session {
	return &Session{kv: kv, refresh: refresh, log: log, now: time.Now}
}

// SetTokens installs a fresh token pair, typically after login or refresh.
func (s *Session) SetTokens(idToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idToken = idToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
}

func (s *Session) SetUser(user *models.User, providerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.providerID = providerID
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) ProviderID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.providerID
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Email
}

// Token returns the current id token, refreshing it first when the exp claim
// has passed. The refresh path is also taken by the API client after a 401.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	token := s.idToken
	s.mu.RUnlock()

	if token == "" {
		return "", fmt.Errorf("no session token, log in first")
	}
	if !s.expired(token) {
		return token, nil
	}
	return s.ForceRefresh(ctx)
}

// ForceRefresh exchanges the refresh token for a new id token regardless of
// the current token's expiry.
func (s *Session) ForceRefresh(ctx context.Context) (string, error) {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if s.refresh == nil || refreshToken == "" {
		return "", fmt.Errorf("no refresh token available")
	}

	idToken, err := s.refresh(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}

	s.mu.Lock()
	s.idToken = idToken
	s.mu.Unlock()

	s.log.Debug("session token refreshed")
	return idToken, nil
}

// expired checks the exp claim without verifying the signature; the server
// does its own verification on every request.
func (s *Session) expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Unparseable tokens are treated as expired so a refresh is attempted.
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return s.now().Add(expiryLeeway).After(exp.Time)
}

// MapIdentity records the auth subject -> internal user id mapping in the
// local store.
func (s *Session) MapIdentity(authSub, userID string) error {
	return s.kv.Put(identityPrefix+authSub, userID)
}

// MappedUserID resolves an auth subject to the internal user id, or "" when
// no mapping exists.
func (s *Session) MappedUserID(authSub string) string {
	var id string
	ok, err := s.kv.Get(identityPrefix+authSub, &id)
	if err != nil || !ok {
		return ""
	}
	return id
}

// Reset clears the in-memory session on logout. The identity map stays in
// the local store; it is keyed by auth subject, not by session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idToken = ""
	s.refreshToken = ""
	s.user = nil
	s.providerID = ""
}

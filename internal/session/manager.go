package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cinesocial/webclient/internal/gateway"
)

// Status is the authentication state of a session. There is no third state:
// a request is either anonymous or authenticated, and hydration completes
// before any dependent reads the state.
type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// keyPrefix namespaces all session keys in the durable store.
const keyPrefix = "cinesocial:session:"

// Session is the client's belief about the current user. An authenticated
// session always carries the access token; the user record may be absent
// when hydration found a token but no (or a corrupt) user entry.
type Session struct {
	Status      Status        `json:"status"`
	AccessToken string        `json:"-"`
	User        *gateway.User `json:"user,omitempty"`
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Manager owns all reads and writes of session state. Construct one at
// startup and inject it into every dependent; no other component touches
// the durable store directly. State is addressed by session ID (the value
// of the browser cookie).
type Manager struct {
	store Store
}

// NewManager creates a session manager over the given durable store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// NewSessionID generates a fresh session identifier for the cookie.
func NewSessionID() string {
	return uuid.NewString()
}

// Hydrate reconstructs session state from the durable store. A token alone
// is sufficient evidence of a prior session: the state is authenticated
// even when the user record is missing. A user record that fails to parse
// is discarded -- that key only -- without touching the token. Idempotent.
func (m *Manager) Hydrate(ctx context.Context, sid string) (Session, error) {
	token, err := m.store.Get(ctx, tokenKey(sid))
	if errors.Is(err, ErrNotFound) {
		return Session{Status: StatusAnonymous}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session token: %w", err)
	}

	sess := Session{Status: StatusAuthenticated, AccessToken: token}

	raw, err := m.store.Get(ctx, userKey(sid))
	if errors.Is(err, ErrNotFound) {
		return sess, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session user record: %w", err)
	}

	var user gateway.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt persisted record: recover silently by dropping just this
		// key. The token stays; the user simply looks absent.
		slog.Warn("discarding corrupt session user record",
			slog.String("session_id", sid),
			slog.Any("error", err),
		)
		if delErr := m.store.Delete(ctx, userKey(sid)); delErr != nil {
			slog.Warn("failed to delete corrupt user record",
				slog.String("session_id", sid),
				slog.Any("error", delErr),
			)
		}
		return sess, nil
	}

	sess.User = &user
	return sess, nil
}

// Login persists the identity and token and makes the session
// authenticated. The token is an opaque credential -- no format validation.
// Logging in over an existing session simply overwrites it.
func (m *Manager) Login(ctx context.Context, sid string, user *gateway.User, accessToken string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user record: %w", err)
	}
	if err := m.store.Set(ctx, tokenKey(sid), accessToken); err != nil {
		return fmt.Errorf("persisting access token: %w", err)
	}
	if err := m.store.Set(ctx, userKey(sid), string(data)); err != nil {
		return fmt.Errorf("persisting user record: %w", err)
	}

	slog.Info("session established",
		slog.String("session_id", sid),
		slog.String("user_id", user.ID),
	)
	return nil
}

// Register is semantically identical to Login. It exists only as a hook for
// future divergence (e.g. an email-verification interstitial).
func (m *Manager) Register(ctx context.Context, sid string, user *gateway.User, accessToken string) error {
	return m.Login(ctx, sid, user, accessToken)
}

// Logout clears both persisted keys and resets the session to anonymous.
// The remote service is not notified -- there is no server-side
// invalidation in this contract.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	tokenErr := m.store.Delete(ctx, tokenKey(sid))
	userErr := m.store.Delete(ctx, userKey(sid))
	if err := errors.Join(tokenErr, userErr); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	slog.Info("session cleared", slog.String("session_id", sid))
	return nil
}

// tokenKey is the durable-store key holding the access token verbatim.
func tokenKey(sid string) string {
	return keyPrefix + sid + ":token"
}

// userKey is the durable-store key holding the JSON-encoded user record.
func userKey(sid string) string {
	return keyPrefix + sid + ":user"
}

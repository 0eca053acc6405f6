package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cinesocial/webclient/internal/gateway"
)

// newTestManager backs a Manager with a miniredis instance so the tests
// exercise the real Redis store semantics.
func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewManager(NewRedisStore(client, time.Hour)), mr
}

func testUser() *gateway.User {
	return &gateway.User{
		ID:             "1",
		Email:          "test@example.com",
		UserName:       "testuser",
		FirstName:      "Test",
		LastName:       "User",
		FullName:       "Test User",
		EmailConfirmed: true,
	}
}

func TestHydrate_EmptyStore(t *testing.T) {
	m, _ := newTestManager(t)

	sess, err := m.Hydrate(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Status != StatusAnonymous {
		t.Errorf("expected anonymous, got %s", sess.Status)
	}
	if sess.Authenticated() {
		t.Error("expected Authenticated() to be false")
	}
}

func TestLogin_PersistsAndRoundTrips(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()
	user := testUser()

	if err := m.Login(ctx, "sid-1", user, "token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// The token key holds the credential verbatim.
	token, err := mr.Get(tokenKey("sid-1"))
	if err != nil {
		t.Fatalf("token key missing: %v", err)
	}
	if token != "token-abc" {
		t.Errorf("expected token stored verbatim, got %q", token)
	}

	// The persisted user record round-trips field for field.
	sess, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", sess.Status)
	}
	if sess.AccessToken != "token-abc" {
		t.Errorf("expected access token token-abc, got %q", sess.AccessToken)
	}
	if sess.User == nil {
		t.Fatal("expected user record")
	}
	if *sess.User != *user {
		t.Errorf("user record did not round-trip: got %+v, want %+v", *sess.User, *user)
	}
}

func TestLoginThenLogout_LeavesNothingBehind(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	if err := m.Login(ctx, "sid-1", testUser(), "token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := m.Logout(ctx, "sid-1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if mr.Exists(tokenKey("sid-1")) {
		t.Error("expected token key removed")
	}
	if mr.Exists(userKey("sid-1")) {
		t.Error("expected user key removed")
	}

	sess, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAnonymous {
		t.Errorf("expected anonymous after logout, got %s", sess.Status)
	}
}

func TestHydrate_TokenWithoutUserRecord(t *testing.T) {
	m, mr := newTestManager(t)
	mr.Set(tokenKey("sid-1"), "token-abc")

	// A token alone is sufficient evidence of a prior session.
	sess, err := m.Hydrate(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAuthenticated {
		t.Errorf("expected authenticated, got %s", sess.Status)
	}
	if sess.User != nil {
		t.Errorf("expected no user record, got %+v", sess.User)
	}
}

func TestHydrate_CorruptUserRecord(t *testing.T) {
	m, mr := newTestManager(t)
	mr.Set(tokenKey("sid-1"), "token-abc")
	mr.Set(userKey("sid-1"), "{not valid json")

	sess, err := m.Hydrate(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAuthenticated {
		t.Errorf("expected authenticated, got %s", sess.Status)
	}
	if sess.User != nil {
		t.Errorf("expected corrupt user record discarded, got %+v", sess.User)
	}
	// Only the corrupt key is dropped; the token is untouched.
	if mr.Exists(userKey("sid-1")) {
		t.Error("expected corrupt user key removed")
	}
	token, err := mr.Get(tokenKey("sid-1"))
	if err != nil || token != "token-abc" {
		t.Errorf("expected token key untouched, got %q (err: %v)", token, err)
	}
}

func TestHydrate_Idempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Login(ctx, "sid-1", testUser(), "token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	first, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("first hydrate failed: %v", err)
	}
	second, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("second hydrate failed: %v", err)
	}
	if first.Status != second.Status || first.AccessToken != second.AccessToken {
		t.Error("expected hydrate to be idempotent")
	}
}

func TestRelogin_Overwrites(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Login(ctx, "sid-1", testUser(), "token-old"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	other := testUser()
	other.ID = "2"
	other.Email = "other@example.com"
	if err := m.Login(ctx, "sid-1", other, "token-new"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	sess, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.AccessToken != "token-new" {
		t.Errorf("expected new token, got %q", sess.AccessToken)
	}
	if sess.User == nil || sess.User.ID != "2" {
		t.Errorf("expected overwritten user record, got %+v", sess.User)
	}
}

func TestRegister_BehavesLikeLogin(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Register(ctx, "sid-1", testUser(), "token-abc"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	sess, err := m.Hydrate(ctx, "sid-1")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAuthenticated || sess.User == nil {
		t.Errorf("expected register to establish a session, got %+v", sess)
	}
}

func TestSessions_AreIsolatedByID(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Login(ctx, "sid-1", testUser(), "token-abc"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	sess, err := m.Hydrate(ctx, "sid-2")
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if sess.Status != StatusAnonymous {
		t.Errorf("expected unrelated session to stay anonymous, got %s", sess.Status)
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if id == "" {
			t.Fatal("expected non-empty session ID")
		}
		if seen[id] {
			t.Fatalf("session ID collision after %d iterations", i)
		}
		seen[id] = true
	}
}

// --- RedisStore ---

func TestRedisStore_GetMissingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedisStore(client, time.Hour)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStore_DeleteMissingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := NewRedisStore(client, time.Hour)

	if err := store.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
}

// Session values marshal without leaking the access token -- the hydration
// endpoint serializes Session straight to the SPA.
func TestSession_JSONOmitsAccessToken(t *testing.T) {
	sess := Session{Status: StatusAuthenticated, AccessToken: "secret", User: testUser()}
	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "accessToken") {
		t.Errorf("expected access token excluded from JSON, got %s", data)
	}
}

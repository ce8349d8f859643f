package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// mockTier is a simple in-memory credential tier for testing, with
// optional fault injection.
type mockTier struct {
	mu      sync.RWMutex
	values  map[string]string
	failAll bool
}

func newMockTier() *mockTier {
	return &mockTier{values: make(map[string]string)}
}

var errTierBroken = errors.New("tier broken")

func (m *mockTier) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failAll {
		return "", false, errTierBroken
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockTier) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errTierBroken
	}
	m.values[key] = value
	return nil
}

func (m *mockTier) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errTierBroken
	}
	delete(m.values, key)
	return nil
}

func (m *mockTier) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// mockProfileSource counts Me calls and returns a canned profile or error.
type mockProfileSource struct {
	profile *Profile
	err     error
	calls   int
}

func (m *mockProfileSource) Me(ctx context.Context, token string) (*Profile, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(durable, ephemeral Tier, src ProfileSource) *Store {
	return NewStore(durable, ephemeral, src, testLogger())
}

func TestLoginDurableRoundTrip(t *testing.T) {
	durable := newMockTier()
	ephemeral := newMockTier()
	profile := &Profile{Nickname: "Alice", Point: 10, AccountID: "acc-1"}

	store := newTestStore(durable, ephemeral, &mockProfileSource{})
	store.Login("tok-abc", profile, Durable)

	if !store.Authenticated() {
		t.Fatal("expected authenticated after login")
	}
	if got, _, _ := durable.Get(KeyToken); got != "tok-abc" {
		t.Errorf("durable token = %q, want tok-abc", got)
	}
	if got, _, _ := durable.Get(KeyRemember); got != "true" {
		t.Errorf("rememberMe = %q, want true", got)
	}

	// Simulate a fresh process over the same tiers. No profile fetch
	// should happen: the cached profile is trusted.
	src := &mockProfileSource{}
	restored := newTestStore(durable, ephemeral, src)
	restored.Restore(context.Background())

	if restored.Token() != "tok-abc" {
		t.Errorf("restored token = %q, want tok-abc", restored.Token())
	}
	if u := restored.User(); u == nil || u.Nickname != "Alice" || u.Point != 10 {
		t.Errorf("restored user = %+v, want Alice/10", restored.User())
	}
	if !restored.Authenticated() {
		t.Error("expected restored session to be authenticated")
	}
	if restored.Persistence() != Durable {
		t.Errorf("restored persistence = %s, want durable", restored.Persistence())
	}
	if src.calls != 0 {
		t.Errorf("profile fetched %d times during cached restore, want 0", src.calls)
	}
}

func TestLoginEphemeralDoesNotSurviveNewBoot(t *testing.T) {
	durable := newMockTier()
	ephemeral := newMockTier()

	store := newTestStore(durable, ephemeral, &mockProfileSource{})
	store.Login("tok-eph", &Profile{Nickname: "Bob"}, Ephemeral)

	if got, _, _ := durable.Get(KeyRemember); got != "false" {
		t.Errorf("rememberMe = %q, want false", got)
	}

	// New boot: the ephemeral tier starts empty, the durable tier is
	// whatever survived.
	restored := newTestStore(durable, newMockTier(), &mockProfileSource{})
	restored.Restore(context.Background())

	if restored.Authenticated() {
		t.Error("expected unauthenticated session after losing ephemeral tier")
	}
	if restored.Token() != "" || restored.User() != nil {
		t.Errorf("restored state = (%q, %+v), want empty", restored.Token(), restored.User())
	}
}

func TestLoginEphemeralSurvivesSameBoot(t *testing.T) {
	durable := newMockTier()
	ephemeral := newMockTier()

	store := newTestStore(durable, ephemeral, &mockProfileSource{})
	store.Login("tok-eph", &Profile{Nickname: "Bob"}, Ephemeral)

	restored := newTestStore(durable, ephemeral, &mockProfileSource{})
	restored.Restore(context.Background())

	if restored.Token() != "tok-eph" {
		t.Errorf("restored token = %q, want tok-eph", restored.Token())
	}
}

func TestLoginTierMutualExclusion(t *testing.T) {
	durable := newMockTier()
	ephemeral := newMockTier()
	store := newTestStore(durable, ephemeral, &mockProfileSource{})

	store.Login("tok-1", &Profile{Nickname: "A"}, Durable)
	if _, ok, _ := ephemeral.Get(KeyToken); ok {
		t.Error("ephemeral tier still holds a token after durable login")
	}

	store.Login("tok-2", &Profile{Nickname: "A"}, Ephemeral)
	if _, ok, _ := durable.Get(KeyToken); ok {
		t.Error("durable tier still holds a token after ephemeral login")
	}
	if _, ok, _ := durable.Get(KeyUser); ok {
		t.Error("durable tier still holds a profile after ephemeral login")
	}
	if got, _, _ := ephemeral.Get(KeyToken); got != "tok-2" {
		t.Errorf("ephemeral token = %q, want tok-2", got)
	}
}

func TestLoginWithoutProfile(t *testing.T) {
	durable := newMockTier()
	store := newTestStore(durable, newMockTier(), &mockProfileSource{})

	store.Login("tok-np", nil, Durable)

	if !store.Authenticated() {
		t.Fatal("expected authenticated")
	}
	if store.User() != nil {
		t.Errorf("user = %+v, want nil", store.User())
	}
	if _, ok, _ := durable.Get(KeyUser); ok {
		t.Error("durable tier holds a profile that was never provided")
	}
}

func TestLogoutIdempotentAndTotal(t *testing.T) {
	durable := newMockTier()
	ephemeral := newMockTier()
	store := newTestStore(durable, ephemeral, &mockProfileSource{})

	// Logout without ever logging in must be a no-op.
	store.Logout()
	assertEmpty(t, store, durable, ephemeral)

	store.Login("tok-abc", &Profile{Nickname: "Alice"}, Durable)
	store.Logout()
	assertEmpty(t, store, durable, ephemeral)

	// Second logout leaves identical state.
	store.Logout()
	assertEmpty(t, store, durable, ephemeral)
}

func assertEmpty(t *testing.T, store *Store, durable, ephemeral *mockTier) {
	t.Helper()
	if store.Authenticated() || store.Token() != "" || store.User() != nil {
		t.Errorf("store not empty: token=%q user=%+v", store.Token(), store.User())
	}
	if n := durable.len(); n != 0 {
		t.Errorf("durable tier has %d entries, want 0", n)
	}
	if n := ephemeral.len(); n != 0 {
		t.Errorf("ephemeral tier has %d entries, want 0", n)
	}
}

func TestRestoreFetchesProfileWhenCacheMissing(t *testing.T) {
	durable := newMockTier()
	durable.values[KeyRemember] = "true"
	durable.values[KeyToken] = "tok-abc"

	src := &mockProfileSource{profile: &Profile{Nickname: "Alice", Point: 10}}
	store := newTestStore(durable, newMockTier(), src)
	store.Restore(context.Background())

	if src.calls != 1 {
		t.Fatalf("profile fetched %d times, want 1", src.calls)
	}
	if u := store.User(); u == nil || u.Nickname != "Alice" {
		t.Fatalf("user = %+v, want Alice", store.User())
	}
	// The fetched profile is mirrored into the tier that held the token.
	if raw, ok, _ := durable.Get(KeyUser); !ok || raw == "" {
		t.Error("fetched profile was not cached in the durable tier")
	}
}

func TestRestorePurgesOnProfileFetchFailure(t *testing.T) {
	durable := newMockTier()
	durable.values[KeyRemember] = "true"
	durable.values[KeyToken] = "tok-expired"
	ephemeral := newMockTier()

	src := &mockProfileSource{err: errors.New("401 unauthorized")}
	store := newTestStore(durable, ephemeral, src)
	store.Restore(context.Background())

	assertEmpty(t, store, durable, ephemeral)
}

func TestRestoreRefetchesCorruptCachedProfile(t *testing.T) {
	durable := newMockTier()
	durable.values[KeyRemember] = "true"
	durable.values[KeyToken] = "tok-abc"
	durable.values[KeyUser] = "{not json"

	src := &mockProfileSource{profile: &Profile{Nickname: "Alice"}}
	store := newTestStore(durable, newMockTier(), src)
	store.Restore(context.Background())

	if src.calls != 1 {
		t.Errorf("profile fetched %d times, want 1", src.calls)
	}
	if u := store.User(); u == nil || u.Nickname != "Alice" {
		t.Errorf("user = %+v, want Alice", store.User())
	}
}

func TestRestoreEmptyTiers(t *testing.T) {
	src := &mockProfileSource{}
	store := newTestStore(newMockTier(), newMockTier(), src)
	store.Restore(context.Background())

	if store.Authenticated() {
		t.Error("expected unauthenticated session")
	}
	if src.calls != 0 {
		t.Errorf("profile fetched %d times with no stored token, want 0", src.calls)
	}
}

func TestTierFailuresAreSwallowed(t *testing.T) {
	broken := newMockTier()
	broken.failAll = true
	store := newTestStore(broken, broken, &mockProfileSource{})

	// None of these may panic or surface an error; in-memory state is
	// the fallback of record.
	store.Login("tok-abc", &Profile{Nickname: "Alice"}, Durable)

	if !store.Authenticated() || store.Token() != "tok-abc" {
		t.Error("in-memory state lost after tier write failure")
	}

	store.Logout()
	if store.Authenticated() {
		t.Error("logout did not clear in-memory state on broken tiers")
	}
}

func TestUserReturnsCopy(t *testing.T) {
	store := newTestStore(newMockTier(), newMockTier(), &mockProfileSource{})
	store.Login("tok", &Profile{Nickname: "Alice"}, Ephemeral)

	u := store.User()
	u.Nickname = "Mallory"

	if store.User().Nickname != "Alice" {
		t.Error("mutating the returned profile leaked into the store")
	}
}

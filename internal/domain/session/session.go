package session

import (
	"context"
	"log/slog"
	"sync"
)

// Store is the single source of truth for the current session. All
// mutation goes through Login, Logout, and Restore; every other
// consumer reads through the accessors. Tier failures are logged and
// swallowed: in-memory state stays authoritative for the rest of the
// process lifetime.
type Store struct {
	durable   Tier
	ephemeral Tier
	profiles  ProfileSource
	logger    *slog.Logger

	mu      sync.RWMutex
	token   string
	user    *Profile
	persist Persistence
}

// NewStore creates an empty, unauthenticated Store over the two
// credential tiers. Call Restore to pick up a persisted session.
func NewStore(durable, ephemeral Tier, profiles ProfileSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		durable:   durable,
		ephemeral: ephemeral,
		profiles:  profiles,
		logger:    logger,
	}
}

// Restore loads a persisted session, if any. The durable rememberMe
// flag decides which tier is consulted. A token without a cached
// profile triggers a profile fetch; if that fetch fails the session is
// purged and the process simply runs unauthenticated. Restore never
// returns an error: every failure degrades to a logged-out state.
func (s *Store) Restore(ctx context.Context) {
	persist := Ephemeral
	if v, ok := s.tierGet(s.durable, KeyRemember); ok && v == "true" {
		persist = Durable
	}
	tier := s.tierFor(persist)

	token, ok := s.tierGet(tier, KeyToken)
	if !ok || token == "" {
		return
	}

	if raw, ok := s.tierGet(tier, KeyUser); ok {
		user, err := decodeProfile(raw)
		if err != nil {
			s.logger.Warn("discarding unreadable cached profile", "error", err)
		} else {
			s.mu.Lock()
			s.token = token
			s.user = user
			s.persist = persist
			s.mu.Unlock()
			return
		}
	}

	// Token without a usable cached profile: fetch it now. A rejected
	// or unreachable fetch means the token is no good to us, so purge
	// everything rather than carry a half-restored session.
	user, err := s.profiles.Me(ctx, token)
	if err != nil {
		s.logger.Info("session restore failed, clearing stored credentials", "error", err)
		s.Logout()
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.persist = persist
	s.mu.Unlock()

	if raw, err := encodeProfile(user); err == nil {
		s.tierSet(tier, KeyUser, raw)
	}
}

// Login overwrites the in-memory session and persists it into the tier
// selected by persistence. The other tier's token and profile are
// cleared so exactly one tier holds the live credentials, and the
// durable rememberMe flag is updated so the next Restore consults the
// right tier.
func (s *Store) Login(token string, user *Profile, persistence Persistence) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.persist = persistence
	s.mu.Unlock()

	tier := s.tierFor(persistence)
	other := s.tierFor(otherPersistence(persistence))

	s.tierSet(tier, KeyToken, token)
	if persistence == Durable {
		s.tierSet(s.durable, KeyRemember, "true")
	} else {
		s.tierSet(s.durable, KeyRemember, "false")
	}
	if user != nil {
		if raw, err := encodeProfile(user); err == nil {
			s.tierSet(tier, KeyUser, raw)
		}
	} else {
		s.tierDelete(tier, KeyUser)
	}

	s.tierDelete(other, KeyToken)
	s.tierDelete(other, KeyUser)
}

// Logout clears the in-memory session and removes every credential key
// from both tiers. Safe to call when already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.persist = Ephemeral
	s.mu.Unlock()

	for _, tier := range []Tier{s.durable, s.ephemeral} {
		s.tierDelete(tier, KeyToken)
		s.tierDelete(tier, KeyUser)
	}
	s.tierDelete(s.durable, KeyRemember)
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil. A non-empty
// token with a nil profile is a legal transient state (token issued,
// profile not fetched yet); callers must not assume Authenticated
// implies a profile.
func (s *Store) User() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Persistence returns the mode of the current session.
func (s *Store) Persistence() Persistence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist
}

func (s *Store) tierFor(p Persistence) Tier {
	if p == Durable {
		return s.durable
	}
	return s.ephemeral
}

func otherPersistence(p Persistence) Persistence {
	if p == Durable {
		return Ephemeral
	}
	return Durable
}

// tierGet reads a key, logging and swallowing tier errors.
func (s *Store) tierGet(t Tier, key string) (string, bool) {
	v, ok, err := t.Get(key)
	if err != nil {
		s.logger.Warn("credential read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// tierSet writes a key, logging and swallowing tier errors.
func (s *Store) tierSet(t Tier, key, value string) {
	if err := t.Set(key, value); err != nil {
		s.logger.Warn("credential write failed", "key", key, "error", err)
	}
}

// tierDelete removes a key, logging and swallowing tier errors.
func (s *Store) tierDelete(t Tier, key string) {
	if err := t.Delete(key); err != nil {
		s.logger.Warn("credential delete failed", "key", key, "error", err)
	}
}

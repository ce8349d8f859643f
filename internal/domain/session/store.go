package session

import "context"

// Tier is a flat key/value credential store. Two implementations exist:
// a durable file tier (config dir, survives reboots) and an ephemeral
// file tier (per-boot runtime dir). The interface is defined in the
// domain to avoid circular imports; adapters live in
// internal/adapter/outbound/credstore.
type Tier interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ProfileSource fetches the account profile for a bearer token. The
// portal API client implements it; Restore uses it when a token is
// found without a cached profile.
type ProfileSource interface {
	Me(ctx context.Context, token string) (*Profile, error)
}

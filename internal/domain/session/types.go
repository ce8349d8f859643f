// Package session holds the process-wide authentication session: the
// bearer token, the signed-in user's profile, and the persistence policy
// that decides which credential tier the session survives in.
package session

import "encoding/json"

// Persistence selects which credential tier a session is written to.
type Persistence int

const (
	// Ephemeral sessions live in the per-boot tier and disappear at the
	// next reboot ("remember me" unchecked).
	Ephemeral Persistence = iota

	// Durable sessions live in the config-dir tier and survive reboots
	// ("remember me" checked).
	Durable
)

// String returns the persistence mode name.
func (p Persistence) String() string {
	if p == Durable {
		return "durable"
	}
	return "ephemeral"
}

// Credential tier keys. Both tiers use the same key set; KeyRemember is
// only ever written to the durable tier because it must be readable
// before any session exists.
const (
	KeyToken    = "authToken"
	KeyUser     = "user"
	KeyRemember = "rememberMe"
)

// Profile is the signed-in user's account record as returned by
// GET account/me.
type Profile struct {
	// Nickname is the display name shown on posts and answers.
	Nickname string `json:"nickname"`
	// Company is the user's affiliation, empty for individuals.
	Company string `json:"company"`
	// Point is the activity point balance.
	Point int `json:"point"`
	// AccountID is the portal account identifier.
	AccountID string `json:"accountId"`
}

// encodeProfile serializes a profile for tier storage.
func encodeProfile(p *Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeProfile parses a profile from tier storage.
func decodeProfile(s string) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

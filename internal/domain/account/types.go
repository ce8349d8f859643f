// Package account drives the login and registration exchange with the
// portal and commits the result into the session store. It owns the
// two-phase token-then-profile negotiation and its rollback.
package account

import (
	"context"

	"github.com/trainhub/trainhub/internal/domain/session"
)

// API is the slice of the portal client the gateway needs. Defined in
// the domain to avoid circular imports; the portal adapter implements it.
type API interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, userID, password string) (string, error)

	// Me fetches the profile for an explicit bearer token.
	Me(ctx context.Context, token string) (*session.Profile, error)

	// Register submits a new account registration.
	Register(ctx context.Context, userID, password, nickname string, trainingID int64) error
}

// Credentials is the login form input.
type Credentials struct {
	UserID      string `validate:"required"`
	Password    string `validate:"required"`
	Persistence session.Persistence
}

// Registration is the sign-up form input. TrainingID is the course the
// applicant enrolls in; registration is refused locally without one.
type Registration struct {
	UserID     string `validate:"required"`
	Password   string `validate:"required,min=4"`
	Nickname   string `validate:"required"`
	TrainingID int64  `validate:"required"`
}

// loginPhase tracks a login attempt through the two-phase negotiation.
type loginPhase int

const (
	phaseTokenPending loginPhase = iota
	phaseProfilePending
	phaseCommitted
	phaseRolledBack
)

// String returns the phase name.
func (p loginPhase) String() string {
	switch p {
	case phaseTokenPending:
		return "token_pending"
	case phaseProfilePending:
		return "profile_pending"
	case phaseCommitted:
		return "committed"
	case phaseRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

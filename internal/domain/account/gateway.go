package account

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/trainhub/trainhub/internal/domain/session"
)

// Gateway negotiates login and registration with the portal and is the
// only session-store writer besides restore and logout. A single
// submission may be in flight at a time; overlapping attempts are
// refused rather than queued, mirroring a disabled submit button.
type Gateway struct {
	api      API
	sessions *session.Store
	validate *validator.Validate
	logger   *slog.Logger

	submitting atomic.Bool
}

// NewGateway creates a Gateway over the portal API and session store.
func NewGateway(api API, sessions *session.Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		api:      api,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Login runs the two-phase token-then-profile negotiation. On success
// the session store holds the committed session. If the token is issued
// but the profile fetch fails, every trace of the token is purged from
// storage and ErrProfileFetchFailed is returned; the caller retries the
// whole login from scratch.
func (g *Gateway) Login(ctx context.Context, creds Credentials) error {
	if !g.submitting.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer g.submitting.Store(false)

	if err := g.validateInput(creds); err != nil {
		return err
	}

	phase := phaseTokenPending
	g.logger.Debug("login attempt", "user", creds.UserID, "phase", phase)

	token, err := g.api.Login(ctx, creds.UserID, creds.Password)
	if err != nil {
		return &AuthError{
			Reason:  ErrInvalidCredentials,
			Message: serverMessage(err),
			Cause:   err,
		}
	}

	phase = phaseProfilePending
	g.logger.Debug("login attempt", "user", creds.UserID, "phase", phase)

	profile, err := g.api.Me(ctx, token)
	if err != nil {
		// Partial failure: a valid token exists server-side but the
		// session cannot be established. Purge both tiers and the
		// remember flag so no trace of the token survives.
		phase = phaseRolledBack
		g.sessions.Logout()
		g.logger.Info("login rolled back after profile fetch failure",
			"user", creds.UserID, "phase", phase, "error", err)
		return &AuthError{
			Reason:  ErrProfileFetchFailed,
			Message: serverMessage(err),
			Cause:   err,
		}
	}

	g.sessions.Login(token, profile, creds.Persistence)
	phase = phaseCommitted
	g.logger.Info("login committed",
		"user", creds.UserID, "phase", phase, "persistence", creds.Persistence)
	return nil
}

// Register submits a new account. The course selection is validated
// locally before any network call. Success does not log the new account
// in; the caller returns to the login form.
func (g *Gateway) Register(ctx context.Context, reg Registration) error {
	if !g.submitting.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer g.submitting.Store(false)

	if err := g.validateInput(reg); err != nil {
		return err
	}

	if err := g.api.Register(ctx, reg.UserID, reg.Password, reg.Nickname, reg.TrainingID); err != nil {
		return &AuthError{
			Reason:  ErrRegistrationRejected,
			Message: serverMessage(err),
			Cause:   err,
		}
	}

	g.logger.Info("registration accepted", "user", reg.UserID, "training", reg.TrainingID)
	return nil
}

// validateInput runs struct validation and converts the first failure
// into a *ValidationError.
func (g *Gateway) validateInput(v any) error {
	err := g.validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		e := validationErrors[0]
		return &ValidationError{Field: e.Field(), Tag: e.Tag()}
	}
	return err
}

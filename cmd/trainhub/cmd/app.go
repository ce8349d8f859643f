package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trainhub/trainhub/internal/adapter/outbound/catalog"
	"github.com/trainhub/trainhub/internal/adapter/outbound/credstore"
	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
	"github.com/trainhub/trainhub/internal/config"
	"github.com/trainhub/trainhub/internal/domain/account"
	"github.com/trainhub/trainhub/internal/domain/session"
)

// app wires config, logging, the credential tiers, the portal client,
// the session store, and the account gateway together for a command
// invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *session.Store
	gateway  *account.Gateway
	client   *portal.Client
}

// newApp builds the application and restores any persisted session.
// Restore runs exactly once per process; a failed restore silently
// leaves the session unauthenticated.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Debug("loaded config", "file", configFile)
	}

	durable, ephemeral, err := buildTiers(cfg, logger)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.APITimeout()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	a.client = portal.NewClient(
		portal.WithBaseURL(cfg.API.BaseURL),
		portal.WithTimeout(timeout),
		portal.WithLogger(logger),
		portal.WithTokenSource(func() string {
			if a.sessions == nil {
				return ""
			}
			return a.sessions.Token()
		}),
	)

	a.sessions = session.NewStore(durable, ephemeral, a.client, logger)
	a.gateway = account.NewGateway(a.client, a.sessions, logger)

	a.sessions.Restore(ctx)

	return a, nil
}

// buildTiers resolves the credential tier paths and constructs the file
// tiers. A tier whose location cannot be resolved degrades to an
// in-memory tier: the session then simply does not outlive the process.
func buildTiers(cfg *config.Config, logger *slog.Logger) (session.Tier, session.Tier, error) {
	durablePath := cfg.Credentials.DurablePath
	if durablePath == "" {
		p, err := credstore.DefaultDurablePath()
		if err != nil {
			logger.Warn("no durable credential location, sessions will not persist", "error", err)
			return credstore.NewMemoryTier(), credstore.NewMemoryTier(), nil
		}
		durablePath = p
	}

	ephemeralPath := cfg.Credentials.EphemeralPath
	if ephemeralPath == "" {
		ephemeralPath = credstore.DefaultEphemeralPath()
	}

	return credstore.NewFileTier(durablePath, logger),
		credstore.NewFileTier(ephemeralPath, logger),
		nil
}

// openCatalog opens the local catalog cache.
func (a *app) openCatalog() (*catalog.Store, error) {
	path := a.cfg.Cache.Path
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve catalog location: %w", err)
		}
		path = filepath.Join(dir, "trainhub", "catalog.db")
	}
	return catalog.Open(path, a.logger)
}

// requireAuth returns an error unless a session is established.
func (a *app) requireAuth() error {
	if !a.sessions.Authenticated() {
		return fmt.Errorf("not logged in (run \"trainhub login\" first)")
	}
	return nil
}

// parseLogLevel converts a config log level string to a slog.Level.
// Unknown values fall back to warn.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

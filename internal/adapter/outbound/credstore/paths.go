package credstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDurablePath returns the standard location of the durable
// credential file, inside the user config dir. Sessions stored here
// survive reboots.
func DefaultDurablePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "trainhub", "credentials.json"), nil
}

// DefaultEphemeralPath returns the standard location of the ephemeral
// credential file. It lives in the per-boot runtime dir when one exists
// (XDG_RUNTIME_DIR, cleared by the OS at reboot) and falls back to a
// per-user directory under the system temp dir.
func DefaultEphemeralPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "trainhub", "session.json")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("trainhub-%d", os.Getuid()), "session.json")
}

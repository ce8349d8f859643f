// Package credstore provides credential tier implementations: a file
// tier used for both the durable (config dir) and ephemeral (per-boot
// runtime dir) stores, and an in-memory tier for tests.
package credstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileTier stores credentials as a flat JSON object in a single file.
// Writes are atomic (write-tmp-then-rename) and guarded by an
// in-process mutex plus a cross-process flock. The file is created with
// 0600 permissions; reads of a missing file behave as an empty tier.
type FileTier struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileTier creates a FileTier backed by the given file path.
func NewFileTier(path string, logger *slog.Logger) *FileTier {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileTier{path: path, logger: logger}
}

// Path returns the backing file path.
func (t *FileTier) Path() string {
	return t.path
}

// Get returns the value for key. A missing file or missing key reads as
// absent, not as an error.
func (t *FileTier) Get(key string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	values, err := t.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key.
func (t *FileTier) Set(key, value string) error {
	return t.update(func(values map[string]string) {
		values[key] = value
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (t *FileTier) Delete(key string) error {
	return t.update(func(values map[string]string) {
		delete(values, key)
	})
}

// update runs a read-modify-write cycle under the in-process mutex and
// a cross-process file lock. When the mutation leaves the tier empty
// the backing file is removed entirely, so a logged-out machine keeps
// no empty credential files around.
func (t *FileTier) update(mutate func(map[string]string)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	lockPath := t.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lockFile.Close() }()

	if err := flockLock(lockFile.Fd()); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer flockUnlock(lockFile.Fd()) //nolint:errcheck

	values, err := t.load()
	if err != nil {
		// A corrupt file is replaced rather than kept: credentials are
		// re-creatable by logging in again.
		t.logger.Warn("resetting unreadable credential file", "path", t.path, "error", err)
		values = make(map[string]string)
	}

	mutate(values)

	if len(values) == 0 {
		if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove credential file: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	data = append(data, '\n')

	return t.writeAtomic(data)
}

// load reads and parses the credential file. Missing file means empty.
func (t *FileTier) load() (map[string]string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	return values, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it
// over the target path. On any error the temp file is cleaned up.
func (t *FileTier) writeAtomic(data []byte) error {
	tmpPath := t.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, t.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to credential file: %w", err)
	}
	return nil
}

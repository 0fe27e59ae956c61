// Package lock serialises commands that rewrite the same project, such as a
// watch loop and a manual generate. Lock files live in the user cache
// directory, never inside the project.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pair-labs/pair/internal/branding"
)

// Dir returns the absolute directory lock files are kept in: the user cache
// directory, or the system temp directory when no cache directory is known.
// It reports false when neither resolves to an absolute path.
func Dir() (string, bool) {
	name := branding.CLIName()
	if cache, err := os.UserCacheDir(); err == nil && filepath.IsAbs(cache) {
		return filepath.Join(cache, name, "locks"), true
	}
	if tmp := os.TempDir(); filepath.IsAbs(tmp) {
		return filepath.Join(tmp, name+"-locks"), true
	}
	return "", false
}

// ProjectLock is a cross-process exclusive lock keyed by project path.
type ProjectLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// ForProject returns the lock for projectPath. The lock file is created
// under dir on first use.
func ForProject(dir, projectPath string) *ProjectLock {
	sum := sha256.Sum256([]byte(filepath.Clean(projectPath)))
	path := filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
	return &ProjectLock{path: path, flock: flock.New(path)}
}

// Lock blocks until the lock is held.
func (l *ProjectLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquiring lock %s: %w", l.path, err)
	}
	l.locked = true
	return nil
}

// TryLock acquires the lock without blocking. It returns false when another
// process holds it.
func (l *ProjectLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("creating lock directory: %w", err)
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquiring lock %s: %w", l.path, err)
	}
	l.locked = ok
	return ok, nil
}

// Unlock releases the lock. Unlocking a lock that is not held is a no-op.
func (l *ProjectLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("releasing lock %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *ProjectLock) Path() string { return l.path }

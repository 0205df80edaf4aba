// lock.go provides advisory per-file locks for rewrites.
//
// Lock files live under the user cache directory rather than next to the
// target, so a replace never leaves stray files in the tree being edited.
// The lock name is a BLAKE2b hash of the absolute target path. When the
// cache directory is unusable the system temp directory is tried; when
// neither works Lock reports ErrLockUnavailable and callers may carry on
// unlocked.

package textio

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/crypto/blake2b"
)

// lockRetry is how often a contended lock is retried.
const lockRetry = 50 * time.Millisecond

// ErrLockUnavailable is returned when no lock directory can hold a lock
// file. The accompanying unlock function is a no-op.
var ErrLockUnavailable = errors.New("lock unavailable")

// lockDirFunc returns the directory holding lock files.
// Tests can override this to use a temp directory.
var lockDirFunc = defaultLockDir

func defaultLockDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "sift", "locks")
	}
	return tempLockDir()
}

func tempLockDir() string {
	return filepath.Join(os.TempDir(), "sift-locks")
}

func noUnlock() error { return nil }

// Lock acquires an exclusive advisory lock for path, blocking until it is
// available or ctx is done. The returned function releases the lock.
//
// If neither the lock directory nor the temp fallback can hold the lock
// file, Lock returns a no-op release function and an error wrapping
// ErrLockUnavailable. Cancellation is always returned as a plain error.
func Lock(ctx context.Context, path string) (func() error, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	dirs := []string{lockDirFunc()}
	if tmp := tempLockDir(); tmp != dirs[0] {
		dirs = append(dirs, tmp)
	}

	var errs []error
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			errs = append(errs, fmt.Errorf("creating lock directory: %w", err))
			continue
		}

		fl := flock.New(filepath.Join(dir, lockName(abs)))
		ok, err := fl.TryLockContext(ctx, lockRetry)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
			}
			errs = append(errs, err)
			continue
		}
		if !ok {
			return nil, fmt.Errorf("failed to acquire lock on %s", path)
		}

		return func() error {
			if err := fl.Unlock(); err != nil {
				return fmt.Errorf("failed to release lock on %s: %w", path, err)
			}
			return nil
		}, nil
	}

	return noUnlock, fmt.Errorf("%w for %s: %w", ErrLockUnavailable, path, errors.Join(errs...))
}

// lockName derives a stable lock file name from an absolute path.
func lockName(abs string) string {
	sum := blake2b.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:8]) + ".lock"
}

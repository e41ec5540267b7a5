package system

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".slidecast.lock"

var ErrDirLocked = errors.New("directory is in use by another job")

// LockDir takes an exclusive advisory lock on dir so that two jobs never
// write segments into the same place. The returned func releases it.
func LockDir(dir string) (func(), error) {
	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirLocked, dir)
	}
	return func() { _ = lock.Unlock() }, nil
}

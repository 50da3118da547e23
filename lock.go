package helpmaker

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFileName is created inside the working directory while a build runs.
const lockFileName = ".helpmaker.lock"

// lockWorkDir takes an exclusive, non-blocking lock on workDir.
func lockWorkDir(workDir string) (*flock.Flock, error) {
	if err := prepareWorkDir(workDir); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(workDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkDirLocked, workDir)
	}
	return lock, nil
}

package helpmaker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alnah/go-helpmaker/internal/fileutil"
)

// ChangeFilename maps path from sourceRoot into destRoot with its extension
// replaced by newExt, and makes sure the parent directory of the result
// exists. A parent that exists as something other than a directory fails
// with ErrNotDirectory.
//
//	ChangeFilename("/in/a/b.help", ".stage1", "/in", "/w/stage1") = "/w/stage1/a/b.stage1"
func ChangeFilename(path, newExt, sourceRoot, destRoot string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", path, sourceRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s", path, sourceRoot)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + newExt
	out := filepath.Clean(filepath.Join(destRoot, rel))

	if err := ensureDir(filepath.Dir(out)); err != nil {
		return "", err
	}
	return out, nil
}

// ensureDir creates dir and its parents. Every existing component must be
// a directory.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	case !os.IsNotExist(err) && !isNotDirErr(err):
		return fmt.Errorf("checking %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
		if isNotDirErr(err) {
			return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// isNotDirErr reports whether err comes from a path component that is a file.
func isNotDirErr(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

package helpmaker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// errNewer stops the walk at the first file newer than the archive.
var errNewer = errors.New("newer input")

// ShouldBuild reports whether the archive at outFile is missing or older
// than any file under inputDir or under one of the extra paths. Extra paths
// that do not exist are skipped.
//
// Only modification times of those trees are compared. Images referenced
// from outside inputDir and the configuration file are not tracked: a
// change to them alone leaves the archive up to date until a forced build.
func ShouldBuild(outFile, inputDir string, extra ...string) (bool, error) {
	out, err := os.Stat(outFile)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking outfile: %w", err)
	}
	if !out.Mode().IsRegular() {
		return true, nil
	}
	built := out.ModTime()

	if newer, err := newerThan(inputDir, built); err != nil || newer {
		return newer, err
	}
	for _, root := range extra {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if newer, err := newerThan(root, built); err != nil || newer {
			return newer, err
		}
	}
	return false, nil
}

// newerThan reports whether root, or any file below it, was modified after
// built.
func newerThan(root string, built time.Time) (bool, error) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(built) {
			return errNewer
		}
		return nil
	})
	switch {
	case errors.Is(err, errNewer):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("checking %s: %w", root, err)
	}
	return false, nil
}

// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrCopySource             = errors.New("cannot read copy source")
	ErrCopyDestination        = errors.New("cannot write copy destination")
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// WriteFileAtomic writes a file through a temporary sibling and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if writeErr := write(tmpFile); writeErr != nil {
		_ = tmpFile.Close()
		return writeErr
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, FilePermissions); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("renaming temp file: %w", renameErr)
	}
	return nil
}

// CopyFile copies src to dst, creating dst's parent directories. The file
// mode and modification time of src are preserved. Failures on the source
// side wrap ErrCopySource, failures on the destination side wrap
// ErrCopyDestination.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- source path resolved by caller
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopySource, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopySource, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrCopySource, src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), DirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyDestination, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) // #nosec G304 -- destination inside staging tree
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopyDestination, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		var pathErr *os.PathError
		if errors.As(err, &pathErr) && pathErr.Path == src {
			return fmt.Errorf("%w: %w", ErrCopySource, err)
		}
		return fmt.Errorf("%w: %w", ErrCopyDestination, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyDestination, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyDestination, err)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/config.yaml" -> true (absolute)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

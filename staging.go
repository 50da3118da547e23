package helpmaker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/logging"
)

// Stage identifies one staging directory.
type Stage string

// Stages in processing order.
const (
	StageConvert  Stage = "stage1" // markdown converted to HTML
	StageExtract  Stage = "stage2" // control tags stripped
	StageRelocate Stage = "stage3" // images copied
)

// Stages lists every stage in processing order.
var Stages = []Stage{StageConvert, StageExtract, StageRelocate}

// StagingPaths maps each stage to its directory inside the working directory.
// Directories are created on first use.
type StagingPaths map[Stage]string

// GeneratePaths computes the staging directories under workDir.
func GeneratePaths(workDir string) (StagingPaths, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	paths := make(StagingPaths, len(Stages))
	for _, stage := range Stages {
		paths[stage] = filepath.Join(abs, string(stage))
	}
	return paths, nil
}

// resetStages removes every staging directory so a build starts from an
// empty tree.
func resetStages(paths StagingPaths, logger *slog.Logger) error {
	for _, stage := range Stages {
		dir := paths[stage]
		if dir == "" {
			continue
		}
		logger.Debug("resetting staging directory", "stage", string(stage), "path", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("resetting %s: %w", stage, err)
		}
	}
	return nil
}

// Clean removes the archive and the working directory. Both paths are
// checked before anything is deleted: an archive path that is not a regular
// file, or a working directory path that is not a directory, fails with
// ErrWrongType and leaves the filesystem untouched. Missing paths are not
// an error. An empty workDir means there is no working directory and only
// the archive is removed.
func Clean(outFile, workDir string, logger *slog.Logger) error {
	if outFile == "" {
		return ErrEmptyPath
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	outExists, err := checkType(outFile, "outfile", func(m os.FileMode) bool { return m.IsRegular() })
	if err != nil {
		return err
	}
	workExists := false
	if workDir != "" {
		workExists, err = checkType(workDir, "working directory", func(m os.FileMode) bool { return m.IsDir() })
		if err != nil {
			return err
		}
	}

	if outExists {
		logger.Info("removing outfile", "path", outFile)
		if err := os.Remove(outFile); err != nil {
			return fmt.Errorf("removing outfile: %w", err)
		}
	} else {
		logger.Info("outfile does not exist", "path", outFile)
	}

	switch {
	case workDir == "":
		logger.Info("no working directory to clean")
	case workExists:
		logger.Info("removing working directory", "path", workDir)
		if err := os.RemoveAll(workDir); err != nil {
			return fmt.Errorf("removing working directory: %w", err)
		}
	default:
		logger.Info("working directory does not exist", "path", workDir)
	}
	return nil
}

// checkType reports whether path exists, failing with ErrWrongType when it
// exists but want rejects its mode. Symlinks are not followed.
func checkType(path, role string, want func(os.FileMode) bool) (bool, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", role, err)
	}
	if !want(info.Mode()) {
		return true, fmt.Errorf("%w: %s %s is a %s", ErrWrongType, role, path, describeMode(info.Mode()))
	}
	return true, nil
}

func describeMode(m os.FileMode) string {
	switch {
	case m.IsDir():
		return "directory"
	case m.IsRegular():
		return "regular file"
	case m&os.ModeSymlink != 0:
		return "symlink"
	default:
		return "special file"
	}
}

// prepareWorkDir makes sure workDir exists as a directory.
func prepareWorkDir(workDir string) error {
	if fileutil.DirExists(workDir) {
		return nil
	}
	return ensureDir(workDir)
}

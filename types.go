package helpmaker

import (
	"fmt"
	"strings"

	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/resources"
)

// JobType selects what Run does.
type JobType string

// Supported job types.
const (
	JobBuild   JobType = "build"
	JobRebuild JobType = "rebuild"
	JobClean   JobType = "clean"
)

// ParseJobType converts a command-line job name to a JobType.
func ParseJobType(s string) (JobType, error) {
	switch jt := JobType(strings.ToLower(strings.TrimSpace(s))); jt {
	case JobBuild, JobRebuild, JobClean:
		return jt, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidJob, s)
	}
}

// Job describes one invocation: what to do, where to write the archive and
// where the help sources live.
type Job struct {
	Type     JobType
	OutFile  string
	InputDir string
}

// Validate checks that the job is complete. A clean job does not need an
// input directory.
func (j Job) Validate() error {
	if _, err := ParseJobType(string(j.Type)); err != nil {
		return err
	}
	if j.OutFile == "" {
		return fmt.Errorf("%w: outfile", ErrEmptyPath)
	}
	if j.Type != JobClean && j.InputDir == "" {
		return fmt.Errorf("%w: input directory", ErrEmptyPath)
	}
	return nil
}

// ControlEntry pairs a context-help control id with the document it
// identifies.
type ControlEntry = markup.ControlEntry

// Resource describes an image copied into the staging tree.
type Resource = resources.Resource

// Document tracks one help source through the stages.
type Document struct {
	Source  string // help source file
	Stage1  string // converted HTML fragment
	Stage2  string // fragment with the control tag stripped
	Title   string // frontmatter title, empty when absent
	Control string // control id, empty when absent
}

// FileFailure records a source file that was skipped.
type FileFailure struct {
	Source string
	Err    error
}

// BuildResult summarizes a build.
type BuildResult struct {
	OutFile   string
	WorkDir   string
	UpToDate  bool // archive was newer than every source; nothing was built
	Documents []Document
	Controls  []ControlEntry
	Resources []Resource
	Failures  []FileFailure
}

package helpmaker

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/pipeline"
	"github.com/alnah/go-helpmaker/internal/resources"
)

// Sentinel errors for build operations.
var (
	// ErrWrongType indicates a clean target exists with the wrong file type.
	ErrWrongType = errors.New("path exists with the wrong file type")

	// ErrMissingResource indicates a referenced image could not be read.
	ErrMissingResource = resources.ErrMissingResource

	// ErrNotDirectory indicates a staging path component is not a directory.
	ErrNotDirectory = errors.New("path exists but is not a directory")

	// ErrWorkDirLocked indicates another process is building into the
	// working directory.
	ErrWorkDirLocked = errors.New("working directory is locked by another build")

	// ErrInputDir indicates the input directory is missing or not a directory.
	ErrInputDir = errors.New("invalid input directory")

	// ErrNoInputs indicates the input directory holds no help sources.
	ErrNoInputs = errors.New("no help sources found")

	// ErrInvalidJob indicates an unknown job type.
	ErrInvalidJob = errors.New("job type must be one of: build, rebuild, clean")

	// ErrEmptyPath indicates a required path argument is empty.
	ErrEmptyPath = errors.New("path cannot be empty")
)

// StageError records which stage failed for which file.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// errorKinds maps known causes to short names, most specific first.
var errorKinds = []struct {
	err  error
	kind string
}{
	{markup.ErrUnmatchedEnd, "unmatched-end"},
	{markup.ErrUnclosedElements, "unclosed-elements"},
	{markup.ErrTokenize, "tokenize"},
	{pipeline.ErrHTMLConversion, "conversion"},
	{pipeline.ErrFrontMatter, "frontmatter"},
	{ErrMissingResource, "missing-resource"},
	{ErrNotDirectory, "not-directory"},
	{fs.ErrNotExist, "not-found"},
	{fs.ErrPermission, "permission"},
}

// ErrorKind names the cause of err for log output. Unknown causes are
// named after the Go type of the innermost error.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

// ErrorTrace condenses the chain of StageErrors in err into
// "stage:path > stage:path", outermost first.
func ErrorTrace(err error) string {
	var frames []string
	for err != nil {
		var se *StageError
		if !errors.As(err, &se) {
			break
		}
		frames = append(frames, se.Stage+":"+se.Path)
		err = se.Err
	}
	return strings.Join(frames, " > ")
}

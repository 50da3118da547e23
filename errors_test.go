package helpmaker

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/pipeline"
)

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "unmatched end inside stage errors",
			err: &StageError{Stage: "file", Path: "a.help", Err: &StageError{
				Stage: "stage2", Path: "a.stage1",
				Err: fmt.Errorf("%w: </div>", markup.ErrUnmatchedEnd),
			}},
			want: "unmatched-end",
		},
		{name: "unclosed", err: fmt.Errorf("%w: [p]", markup.ErrUnclosedElements), want: "unclosed-elements"},
		{name: "frontmatter", err: fmt.Errorf("%w: bad", pipeline.ErrFrontMatter), want: "frontmatter"},
		{name: "missing resource", err: fmt.Errorf("%w: logo.png", ErrMissingResource), want: "missing-resource"},
		{name: "not exist", err: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, want: "not-found"},
		{name: "unknown", err: fmt.Errorf("wrapped: %w", errors.New("boom")), want: "*errors.errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorTrace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain error", err: errors.New("boom"), want: ""},
		{
			name: "single frame",
			err:  &StageError{Stage: "stage1", Path: "a.help", Err: errors.New("boom")},
			want: "stage1:a.help",
		},
		{
			name: "nested frames through wrapping",
			err: fmt.Errorf("run: %w", &StageError{Stage: "file", Path: "a.help", Err: &StageError{
				Stage: "stage2", Path: "a.stage1", Err: errors.New("boom"),
			}}),
			want: "file:a.help > stage2:a.stage1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ErrorTrace(tt.err); got != tt.want {
				t.Errorf("ErrorTrace() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &StageError{Stage: "stage3", Path: "a.stage2", Err: cause}

	if got, want := err.Error(), "stage3 a.stage2: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

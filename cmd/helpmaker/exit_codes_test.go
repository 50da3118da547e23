package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every job outcome, plus
//   wrapped and hinted errors to verify the errors.Is() chain.

import (
	"errors"
	"fmt"
	"testing"

	helpmaker "github.com/alnah/go-helpmaker"
	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/config"
	"github.com/alnah/go-helpmaker/internal/markup"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"wrong type", helpmaker.ErrWrongType, ExitWrongType},
		{"wrapped wrong type", fmt.Errorf("clean: %w", helpmaker.ErrWrongType), ExitWrongType},
		{"hinted wrong type", withHint(helpmaker.ErrWrongType, "\n  hint: x"), ExitWrongType},

		{"missing resource", helpmaker.ErrMissingResource, ExitMissingResource},
		{"missing resource in stage error", &helpmaker.StageError{Stage: "file", Path: "a.help", Err: helpmaker.ErrMissingResource}, ExitMissingResource},

		{"usage", ErrUsage, ExitUsage},
		{"invalid job", helpmaker.ErrInvalidJob, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"style not found", fmt.Errorf("loading page template: %w", assets.ErrStyleNotFound), ExitUsage},

		{"unmatched end", markup.ErrUnmatchedEnd, ExitGeneral},
		{"work dir locked", helpmaker.ErrWorkDirLocked, ExitGeneral},
		{"no inputs", helpmaker.ErrNoInputs, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_BelowReservedRange(t *testing.T) {
	t.Parallel()

	for _, code := range []int{ExitSuccess, ExitGeneral, ExitWrongType, ExitMissingResource, ExitUsage} {
		if code < 0 || code >= 126 {
			t.Errorf("exit code %d outside 0-125", code)
		}
	}
}

package main

import (
	"errors"
	"io"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseJobFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseJobFlags([]string{
		"build", "-t", "work", "out.zip", "--force", "in",
		"-c", "team", "--style", "", "--asset-path", "assets", "--log-format", "json",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseJobFlags() error = %v", err)
	}

	if want := []string{"build", "out.zip", "in"}; !slices.Equal(positional, want) {
		t.Errorf("positional = %v, want %v", positional, want)
	}
	if f.workDir != "work" || !f.force {
		t.Errorf("workDir = %q, force = %v", f.workDir, f.force)
	}
	if f.common.config != "team" || f.common.logFormat != "json" {
		t.Errorf("common = %+v", f.common)
	}
	if !f.assets.styleSet || f.assets.style != "" || f.assets.assetPath != "assets" {
		t.Errorf("assets = %+v", f.assets)
	}
}

func TestParseJobFlags_StyleNotSet(t *testing.T) {
	t.Parallel()

	f, _, err := parseJobFlags([]string{"build", "out.zip", "in"}, io.Discard)
	if err != nil {
		t.Fatalf("parseJobFlags() error = %v", err)
	}
	if f.assets.styleSet {
		t.Error("styleSet = true without --style")
	}
}

func TestParseJobFlags_Help(t *testing.T) {
	t.Parallel()

	if _, _, err := parseJobFlags([]string{"build", "--help"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseJobFlags(--help) error = %v, want ErrHelp", err)
	}
}

func TestParseJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		positional []string
		wantInput  string
		wantErr    bool
	}{
		{name: "build", positional: []string{"build", "out.zip", "in"}, wantInput: "in"},
		{name: "clean with outfile only", positional: []string{"clean", "out.zip"}},
		{name: "clean accepts indir", positional: []string{"clean", "out.zip", "in"}, wantInput: "in"},
		{name: "empty", positional: nil, wantErr: true},
		{name: "rebuild missing indir", positional: []string{"rebuild", "out.zip"}, wantErr: true},
		{name: "clean missing outfile", positional: []string{"clean"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job, err := parseJob(tt.positional)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("parseJob() error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJob() error = %v", err)
			}
			if job.OutFile != "out.zip" || job.InputDir != tt.wantInput {
				t.Errorf("parseJob() = %+v", job)
			}
		})
	}
}

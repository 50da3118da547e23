package main

import (
	"errors"

	helpmaker "github.com/alnah/go-helpmaker"
	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/config"
	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/hints"
)

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }

func (e *hintedError) Unwrap() error { return e.err }

// withHint returns err unchanged when hint is empty.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// hintFor picks the hint matching err, or "" when none applies.
func hintFor(err error, job helpmaker.Job, cfg *config.Config, f *jobFlags) string {
	switch {
	case errors.Is(err, helpmaker.ErrWrongType):
		return hints.ForWrongType(job.OutFile)
	case errors.Is(err, helpmaker.ErrMissingResource):
		return hints.ForMissingResource(job.InputDir)
	case errors.Is(err, helpmaker.ErrNotDirectory):
		return hints.ForNotDirectory()
	case errors.Is(err, helpmaker.ErrWorkDirLocked):
		return hints.ForWorkDirLocked()
	case errors.Is(err, helpmaker.ErrNoInputs):
		return hints.ForNoInputs(cfg.Input.Extension)
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(f.common.config) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(f.common.config))
	case errors.Is(err, assets.ErrStyleNotFound):
		assetPath := cfg.Archive.AssetPath
		if f.assets.assetPath != "" {
			assetPath = f.assets.assetPath
		}
		resolver, rerr := assets.NewAssetResolver(assetPath)
		if rerr != nil {
			return ""
		}
		return hints.ForStyleNotFound(resolver.Styles())
	}
	return ""
}

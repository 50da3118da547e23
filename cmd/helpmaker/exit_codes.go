package main

import (
	"errors"

	helpmaker "github.com/alnah/go-helpmaker"
	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/config"
	"github.com/alnah/go-helpmaker/internal/fileutil"
)

// Exit codes for helpmaker CLI.
// 64 follows the sysexits EX_USAGE convention; 2 and 3 are job outcomes.
const (
	ExitSuccess         = 0  // Job completed
	ExitGeneral         = 1  // General/unexpected error
	ExitWrongType       = 2  // Clean target exists with the wrong file type
	ExitMissingResource = 3  // Referenced image missing or unreadable
	ExitUsage           = 64 // Invalid arguments, flags or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, helpmaker.ErrWrongType) {
		return ExitWrongType
	}

	if errors.Is(err, helpmaker.ErrMissingResource) {
		return ExitMissingResource
	}

	// Usage/config/validation errors
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, helpmaker.ErrInvalidJob) ||
		errors.Is(err, helpmaker.ErrEmptyPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}

package assets

import (
	"fmt"
	"regexp"
)

// assetNamePattern allows letters, digits, hyphens and underscores.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName for empty names and for anything outside
// [A-Za-z0-9_-], which rules out separators, dots and traversal.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

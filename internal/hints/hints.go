// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForWrongType returns a hint for a clean target of the wrong kind.
func ForWrongType(outFile string) string {
	return format("clean removes a regular file at " + outFile +
		" and a directory at the working directory; move the conflicting entry away")
}

// ForMissingResource returns a hint for images that cannot be copied.
func ForMissingResource(inputDir string) string {
	if inputDir == "" {
		return format("image paths are resolved relative to the input directory")
	}
	return format("image paths are resolved relative to " + inputDir)
}

// ForNotDirectory returns a hint when a staging directory path is a file.
func ForNotDirectory() string {
	return format("run clean first or choose another working directory with --temp")
}

// ForWorkDirLocked returns a hint when another build holds the working directory.
func ForWorkDirLocked() string {
	return format("another build is using this working directory; wait for it or pass --temp")
}

// ForNoInputs returns a hint when no help sources were found.
func ForNoInputs(extension string) string {
	return format("help sources must end in " + extension + "; set input.extension in the config to change it")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-helpmaker/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	sep := string(os.PathSeparator)
	for _, p := range searchedPaths {
		if strings.Contains(p, sep+"go-helpmaker"+sep) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

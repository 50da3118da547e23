package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// IsRemoteReference reports whether ref points outside the local filesystem
// (URLs, data URIs, protocol-relative URLs) or is a bare fragment.
func IsRemoteReference(ref string) bool {
	if ref == "" {
		return true
	}

	lower := strings.ToLower(ref)
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// LocalReferencePath turns an image reference into the file path it names.
// Rendered markup carries URL-encoded references, so the path is unescaped
// and any query or fragment is dropped. References with a URL scheme are not
// local and report false. A reference that does not parse as a URL is
// returned unchanged.
func LocalReferencePath(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return ref, true
	}
	switch {
	case len(u.Scheme) == 1:
		// Windows drive letter.
		if p, err := url.PathUnescape(strings.SplitN(ref, "?", 2)[0]); err == nil {
			return p, true
		}
		return ref, true
	case u.Scheme != "" || u.Host != "":
		return "", false
	case u.Path == "":
		return "", false
	}
	return u.Path, true
}

// ResolveReference resolves a local reference against root. Absolute
// references are kept as they are. The result is cleaned.
func ResolveReference(root, ref string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(root, ref)
}

// IsPathUnderDir checks if path is dir itself or lies below it.
// Both paths are cleaned before comparison.
func IsPathUnderDir(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

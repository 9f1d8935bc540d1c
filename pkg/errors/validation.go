package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateAbsolutePath validates a filesystem path that must be absolute.
// Lookups keyed on absolute paths (e.g. file-reference resolution) reject
// relative input up front rather than producing silent misses.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must be absolute
func ValidateAbsolutePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !filepath.IsAbs(path) {
		return New(ErrCodeInvalidPath, "path must be absolute: %q", path)
	}

	return nil
}

// ValidateGroupPath validates a slash-delimited group path used to locate
// child groups under a project's main group (e.g. "Sources/Models").
//
// Validation rules:
//   - Path cannot be empty
//   - No leading or trailing slashes
//   - No empty components
//   - No control characters
func ValidateGroupPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "group path cannot be empty")
	}

	if strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "group path cannot start or end with a slash: %q", path)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "group path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			return New(ErrCodeInvalidPath, "group path contains an empty component: %q", path)
		}
	}

	return nil
}

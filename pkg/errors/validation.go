package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// frameNameRegex matches stored frame names: a plain basename.
var frameNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateFrameName validates the name a frame is stored under. It must be a
// simple basename so it can never escape the frame directory.
func ValidateFrameName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "frame name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "frame name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "frame name cannot contain path traversal sequences (..)")
	}
	if !frameNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPath, "invalid frame name: %q", name)
	}
	return nil
}

// itemKeyRegex matches composite item keys such as "E-12".
var itemKeyRegex = regexp.MustCompile(`^[EFM]-[0-9]+$`)

// ValidateCollapsedKey validates a key from a collapsed-key set received from
// a client. Accepted forms are composite item keys ("E-12") and group header
// keys ("group:<name>").
func ValidateCollapsedKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "collapsed key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "collapsed key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "collapsed key contains invalid control characters")
		}
	}
	if name, ok := strings.CutPrefix(key, "group:"); ok {
		if name == "" {
			return New(ErrCodeInvalidKey, "group key has no name")
		}
		return nil
	}
	if !itemKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid item key: %q", key)
	}
	return nil
}

// ValidateURL validates a connection URL against the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}

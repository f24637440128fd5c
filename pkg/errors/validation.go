package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Output formats the frame pipeline can produce.
var ValidFormats = []string{"svg", "png"}

// MaxDimension bounds the width and height of a rendered frame.
const MaxDimension = 16384

// ValidateFormat checks that format is one of [ValidFormats].
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(ValidFormats, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateDimensions checks a frame size in pixels.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "frame size must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidInput, "frame size %dx%d exceeds %d", width, height, MaxDimension)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS hex color.
func ValidateHexColor(s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	return nil
}

// ValidateListenAddr validates a host:port listen address.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return New(ErrCodeInvalidConfig, "listen address %q has no port", addr)
	}
	port := addr[i+1:]
	if port == "" {
		return New(ErrCodeInvalidConfig, "listen address %q has no port", addr)
	}
	for _, r := range port {
		if !unicode.IsDigit(r) {
			return New(ErrCodeInvalidConfig, "listen address %q has an invalid port", addr)
		}
	}
	return nil
}

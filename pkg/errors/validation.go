package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateCount checks that a category or series count is at least one.
func ValidateCount(name string, n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "%s must be >= 1, got %d", name, n)
	}
	return nil
}

// ValidateFinite checks that v is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be > 0, got %v", name, v)
	}
	return nil
}

// specExtensions lists the file extensions accepted for chart specs,
// tuning profiles and theme token files.
var specExtensions = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ValidateSpecFilename validates the name of a spec, profile or theme file.
// It ensures the filename is a plain name with a supported extension.
func ValidateSpecFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	base := filepath.Base(filename)
	if strings.HasPrefix(base, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file: %q", base)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !specExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported file extension %q (must be .toml, .yaml, .yml or .json)", ext)
	}
	return nil
}

// ValidatePath validates a file path for safety.
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

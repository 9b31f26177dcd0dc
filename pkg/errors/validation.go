package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds board names and tile IDs.
const maxNameLength = 256

// boardNameRegex matches board names usable in URLs and cache keys.
var boardNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardName validates a board name for use in URL paths and cache keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 256 characters
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
//   - No ".." sequences
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoard, "board name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidBoard, "board name too long (max %d characters)", maxNameLength)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidBoard, "board name cannot contain %q", "..")
	}

	if !boardNameRegex.MatchString(name) {
		return New(ErrCodeInvalidBoard, "invalid board name: %q", name)
	}

	return nil
}

// ValidateTileID validates a tile identifier. IDs may be any printable text;
// an empty ID is allowed and means "key by position".
func ValidateTileID(id string) error {
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidBoard, "tile id too long (max %d characters)", maxNameLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "tile id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a board or output file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}

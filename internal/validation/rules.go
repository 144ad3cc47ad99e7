// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

var (
	// unsafeFileNameChars matches everything outside the conservative set we
	// allow in download file names.
	unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9._\- ]+`)

	// repeatedSeparators collapses runs of separator characters left behind
	// after stripping unsafe characters.
	repeatedSeparators = regexp.MustCompile(`[._\- ]{2,}`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// SanitizeFileName normalizes a stored file name for use in signed download
// URLs. Unsafe characters are replaced with underscores, runs of separators
// are collapsed to a single one, and the result is truncated to maxLength
// bytes. The signature is always computed over the sanitized name, so the
// raw stored name never reaches the wire.
func SanitizeFileName(name string, maxLength int) string {
	sanitized := unsafeFileNameChars.ReplaceAllString(name, "_")
	sanitized = repeatedSeparators.ReplaceAllStringFunc(sanitized, func(run string) string {
		return run[:1]
	})
	sanitized = strings.Trim(sanitized, "._- ")

	if maxLength > 0 && len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength]
		sanitized = strings.Trim(sanitized, "._- ")
	}

	if sanitized == "" {
		return "file"
	}
	return sanitized
}

package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values.
// The returned error carries code and names the offending field.
func ValidateFinite(code Code, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number", field)
	}
	return nil
}

// ValidatePositive rejects values that are not finite or not strictly positive.
func ValidatePositive(code Code, field string, v float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(code, "%s must be greater than 0 (got %g)", field, v)
	}
	return nil
}

// ValidateRange rejects values outside the closed interval [min, max].
func ValidateRange(code Code, field string, v, min, max float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v < min || v > max {
		return New(code, "%s must be between %g and %g (got %g)", field, min, max, v)
	}
	return nil
}

// ValidateName validates a short identifier such as a standard name.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 64 characters
//   - Only letters, digits, '-' and '_'
func ValidateName(code Code, name string) error {
	if name == "" {
		return New(code, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(code, "name too long (max 64 characters)")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(code, "name contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates a file path for safety before it is opened.
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

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

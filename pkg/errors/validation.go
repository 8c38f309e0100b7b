package errors

import (
	"strings"
	"unicode"
)

// Field is a named request value checked by [ValidateRequired].
type Field struct {
	Name  string
	Value string
}

// ValidateRequired returns a MISSING_FIELD error naming the first field
// whose value is empty after trimming whitespace.
func ValidateRequired(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return New(ErrCodeMissingField, "missing required field: %s", f.Name)
		}
	}
	return nil
}

// ValidateUsername validates a username for registration.
//
// Validation rules:
//   - Username cannot be empty
//   - Maximum length of 64 characters
//   - No control characters or whitespace
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeMissingField, "missing required field: username")
	}

	const maxUsernameLength = 64
	if len(name) > maxUsernameLength {
		return New(ErrCodeInvalidInput, "username too long (max %d characters)", maxUsernameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "username contains invalid characters")
		}
	}
	return nil
}

// ValidatePassword checks the password is present and fits bcrypt's 72-byte input limit.
func ValidatePassword(password string) error {
	if password == "" {
		return New(ErrCodeMissingField, "missing required field: password")
	}
	if len(password) > 72 {
		return New(ErrCodeInvalidInput, "password too long (max 72 bytes)")
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of: %s)", format, strings.Join(allowed, ", "))
}

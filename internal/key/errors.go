package key

import (
	"errors"
	"fmt"
)

// Error reports an identity that cannot be parsed, applied or stored.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Key is the rendered key involved, if any.
	Key string
}

// ErrorCode categorizes key errors.
type ErrorCode string

const (
	// ErrCodeInvalidIdentity indicates an identity/resource pairing that is
	// structurally invalid: nil resource, missing type, mismatched type.
	ErrCodeInvalidIdentity ErrorCode = "INVALID_IDENTITY"

	// ErrCodeInvalidKey indicates text that does not parse as a key.
	ErrCodeInvalidKey ErrorCode = "INVALID_KEY"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidIdentity returns true if err is, or wraps, an invalid identity error.
func IsInvalidIdentity(err error) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeInvalidIdentity
	}
	return false
}

// IsInvalidKey returns true if err is, or wraps, a key parse error.
func IsInvalidKey(err error) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeInvalidKey
	}
	return false
}

func invalidIdentity(k Key, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidIdentity,
		Message: fmt.Sprintf(format, args...),
		Key:     k.String(),
	}
}

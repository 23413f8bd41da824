package lights

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a lights configuration could not be used.
type ErrorCode string

// Error codes for lights configuration.
const (
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParseError ErrorCode = "CONFIG_PARSE_ERROR"
	ErrMissingField     ErrorCode = "MISSING_FIELD"
)

// Error represents a lights configuration error with a code.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HasCode checks if the error matches a specific code.
func (e *Error) HasCode(code ErrorCode) bool {
	return e.Code == code
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err wraps an *Error carrying code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.HasCode(code)
}

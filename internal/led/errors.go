package led

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure raised while resolving or writing
// LED commands.
type ErrorCode string

// ErrorCode constants for LED command errors.
const (
	ErrUnknownSymbol  ErrorCode = "UNKNOWN_SYMBOL"
	ErrMalformedColor ErrorCode = "MALFORMED_COLOR"
	ErrDeviceWrite    ErrorCode = "DEVICE_WRITE_ERROR"
)

// Error represents an error in the led package.
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
	var ledErr *Error
	if errors.As(err, &ledErr) {
		return ledErr.HasCode(code)
	}
	return false
}

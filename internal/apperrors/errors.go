// Package apperrors provides typed error handling for the setup tooling.
// It uses struct-based errors with separate operator-facing and internal messages.
package apperrors

import "fmt"

// Code categorizes errors for consistent handling across the application.
type Code int

// Error codes for categorizing application errors.
const (
	// CodeUnknown indicates an unspecified error type
	CodeUnknown Code = iota
	// CodeMissingCredentials indicates no service account credentials could be located
	CodeMissingCredentials
	// CodeInvalidCredentials indicates the credential JSON is malformed or incomplete
	CodeInvalidCredentials
	// CodeInvalidInput indicates malformed or missing operator input
	CodeInvalidInput
	// CodeAPIFailure indicates a Google API returned a non-success status
	CodeAPIFailure
	// CodeTransport indicates the request never reached the remote API
	CodeTransport
	// CodeScaffold indicates a failure writing the local project scaffold
	CodeScaffold
)

// Error represents a setup error with separate operator-facing and internal messages.
// The Message field is printed to the operator together with any Remediation text.
// The Internal field contains debugging details and should only be logged.
type Error struct {
	Code        Code   // Error category
	Message     string // Operator-facing message
	Remediation string // Optional: how the operator can fix it
	Internal    string // Internal details (for logging only)
	Field       string // Optional: which credential field caused the error
	Err         error  // Wrapped underlying error
}

// Error implements the error interface.
// Returns the operator-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithInternal adds internal debugging details to the error.
func (e *Error) WithInternal(format string, args ...any) *Error {
	e.Internal = fmt.Sprintf(format, args...)
	return e
}

// WithRemediation adds remediation guidance to the error.
func (e *Error) WithRemediation(text string) *Error {
	e.Remediation = text
	return e
}

// WithField adds field information to the error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "unknown"
	case CodeMissingCredentials:
		return "missing_credentials"
	case CodeInvalidCredentials:
		return "invalid_credentials"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeAPIFailure:
		return "api_failure"
	case CodeTransport:
		return "transport"
	case CodeScaffold:
		return "scaffold"
	default:
		return fmt.Sprintf("unknown_code_%d", c)
	}
}

// Is reports whether target matches this error's code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// MissingCredentials creates a new missing credentials error with the given message.
func MissingCredentials(message string) *Error {
	return &Error{
		Code:    CodeMissingCredentials,
		Message: message,
	}
}

// InvalidCredentials creates a new invalid credentials error with the given message.
func InvalidCredentials(message string) *Error {
	return &Error{
		Code:    CodeInvalidCredentials,
		Message: message,
	}
}

// InvalidInput creates a new invalid input error with the given message.
func InvalidInput(message string) *Error {
	return &Error{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// APIFailure creates a new API failure error with the given message.
func APIFailure(message string) *Error {
	return &Error{
		Code:    CodeAPIFailure,
		Message: message,
	}
}

// Transport creates a new transport error with the given message.
func Transport(message string) *Error {
	return &Error{
		Code:    CodeTransport,
		Message: message,
	}
}

// Scaffold creates a new scaffold error with the given message.
func Scaffold(message string) *Error {
	return &Error{
		Code:    CodeScaffold,
		Message: message,
	}
}

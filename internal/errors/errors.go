// Package errors provides the categorized error taxonomy shared by the
// notification dispatcher, the protocol handler and the CLI.
//
// Every error that crosses a component boundary is a *NotifyError carrying a
// Category. The category decides the propagation policy (surfaced to the
// caller, logged only, or recovered with defaults) and the RPC error class
// reported to MCP clients.
package errors

import (
	goerrors "errors"
)

// ErrorCategory classifies errors by origin and propagation policy.
type ErrorCategory int

const (
	// Argument errors are invalid command line usage.
	Argument ErrorCategory = iota
	// Configuration errors are malformed or invalid config files.
	// They are recovered by falling back to defaults.
	Configuration
	// Disabled errors mean the notification capability is switched off.
	Disabled
	// InvalidParams errors are malformed inbound notification requests.
	InvalidParams
	// PlatformUnsupported errors mean no notification backend exists on this OS.
	PlatformUnsupported
	// Backend errors are failures reported by the OS notification facility.
	Backend
	// IO errors come from the notification log file.
	IO
	// Runtime errors are anything else that fails at execution time.
	Runtime
)

// String returns a human-readable name for the category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Disabled:
		return "Disabled Error"
	case InvalidParams:
		return "Invalid Parameters"
	case PlatformUnsupported:
		return "Platform Unsupported"
	case Backend:
		return "Backend Error"
	case IO:
		return "IO Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// RPC error classes reported to protocol clients.
const (
	ClassMethodNotFound = "method_not_found"
	ClassInvalidParams  = "invalid_params"
	ClassInternalError  = "internal_error"
)

// RPCClass maps the category to the caller-visible RPC error class.
func (c ErrorCategory) RPCClass() string {
	switch c {
	case Disabled:
		return ClassMethodNotFound
	case InvalidParams, Argument:
		return ClassInvalidParams
	default:
		return ClassInternalError
	}
}

// NotifyError is a structured error with a category, a message, optional
// remediation steps and an optional underlying cause.
type NotifyError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

// Error implements the error interface.
func (e *NotifyError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *NotifyError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a NotifyError sentinel of the same category.
// Only sentinels (empty message) match by category, so two distinct
// errors of the same category are not considered equal.
func (e *NotifyError) Is(target error) bool {
	t, ok := target.(*NotifyError)
	if !ok {
		return false
	}
	if t.Message == "" {
		return e.Category == t.Category
	}
	return e == t
}

// Sentinels for errors.Is checks by category.
var (
	ErrConfiguration       = &NotifyError{Category: Configuration}
	ErrDisabled            = &NotifyError{Category: Disabled}
	ErrInvalidParams       = &NotifyError{Category: InvalidParams}
	ErrPlatformUnsupported = &NotifyError{Category: PlatformUnsupported}
	ErrBackend             = &NotifyError{Category: Backend}
	ErrIO                  = &NotifyError{Category: IO}
)

// New creates a NotifyError with the given category, message and remediation.
func New(category ErrorCategory, message string, remediation ...string) *NotifyError {
	return &NotifyError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *NotifyError {
	return New(Argument, message, remediation...)
}

// NewArgumentErrorWithUsage creates an argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *NotifyError {
	err := New(Argument, message, remediation...)
	err.Usage = usage
	return err
}

// NewConfigError creates a configuration error wrapping cause.
func NewConfigError(message string, cause error, remediation ...string) *NotifyError {
	err := New(Configuration, message, remediation...)
	err.Err = cause
	return err
}

// NewBackendError creates a backend error carrying the backend's message.
func NewBackendError(message string, cause error) *NotifyError {
	err := New(Backend, message)
	err.Err = cause
	return err
}

// NewIOError creates an IO error wrapping cause.
func NewIOError(message string, cause error) *NotifyError {
	err := New(IO, message)
	err.Err = cause
	return err
}

// Wrap wraps an existing error with a category and optional remediation.
// If the error is already a NotifyError, its category is updated.
func Wrap(err error, category ErrorCategory, remediation ...string) *NotifyError {
	if err == nil {
		return nil
	}

	if ne, ok := err.(*NotifyError); ok {
		ne.Category = category
		if len(remediation) > 0 {
			ne.Remediation = append(ne.Remediation, remediation...)
		}
		return ne
	}

	return &NotifyError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps err with a new message prefix.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *NotifyError {
	if err == nil {
		return nil
	}

	return &NotifyError{
		Category:    category,
		Message:     message + ": " + err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// AsNotifyError returns the NotifyError in err's chain, or nil.
func AsNotifyError(err error) *NotifyError {
	var ne *NotifyError
	if goerrors.As(err, &ne) {
		return ne
	}
	return nil
}

// CategoryOf returns the category of err, defaulting to Runtime.
func CategoryOf(err error) ErrorCategory {
	if ne := AsNotifyError(err); ne != nil {
		return ne.Category
	}
	return Runtime
}

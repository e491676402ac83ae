package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
// This lets the package sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidConfig     = New(ErrCodeInvalidConfig, "invalid configuration")
	ErrUnknownTransport  = New(ErrCodeUnknownTransport, "unknown transport")
	ErrRegistrySealed    = New(ErrCodeRegistrySealed, "registry is sealed")
	ErrInterceptorFailed = New(ErrCodeInterceptorFailed, "interceptor failed")
)

// --- Common Error Constructors ---

// InvalidConfig creates an error for a configuration key whose value is malformed.
func InvalidConfig(key string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("invalid value for %s", key),
		Details: map[string]any{"key": key},
		Cause:   cause,
	}
}

// UnknownTransport creates an error for an unregistered transport kind.
func UnknownTransport(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownTransport,
		Message: fmt.Sprintf("no transport registered for kind %q", kind),
		Details: map[string]any{"kind": kind},
	}
}

// RegistrySealed creates an error for a registration attempted after the registry was sealed.
func RegistrySealed(name string) *AppError {
	return &AppError{
		Code:    ErrCodeRegistrySealed,
		Message: fmt.Sprintf("cannot register %q: registry is sealed", name),
		Details: map[string]any{"name": name},
	}
}

// InterceptorFailed wraps an error returned by a request interceptor.
func InterceptorFailed(name string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInterceptorFailed,
		Message: fmt.Sprintf("interceptor %s failed", name),
		Details: map[string]any{"interceptor": name},
		Cause:   cause,
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "unexpected internal error", Cause: cause}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration value could not be parsed or validated.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeUnknownTransport indicates no transport factory is registered for a kind.
	ErrCodeUnknownTransport ErrorCode = "UNKNOWN_TRANSPORT"
)

// Registry errors
const (
	// ErrCodeRegistrySealed indicates a write to a registry after startup completed.
	ErrCodeRegistrySealed ErrorCode = "REGISTRY_SEALED"
)

// Runtime errors
const (
	// ErrCodeInterceptorFailed indicates a request interceptor rejected or failed to rewrite a request.
	ErrCodeInterceptorFailed ErrorCode = "INTERCEPTOR_FAILED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

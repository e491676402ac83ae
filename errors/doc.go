// Package errors provides the structured error type shared by feignkit
// packages. Errors carry a machine-readable code so callers can branch with
// errors.Is against the package sentinels.
package errors

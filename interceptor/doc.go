// Package interceptor defines request interceptors and the per-client
// registry they are wired into.
//
// A Registry holds named values in two scopes: defaults, visible to every
// named client, and client-specific entries that override a default of the
// same name. Values are stored untyped and queried by capability:
//
//	interceptors := interceptor.Instances[interceptor.Interceptor](reg, "foo")
//
// Registration happens once at startup. Seal freezes the registry, after
// which it is safe for concurrent readers.
package interceptor

// Package component defines the lifecycle contract for long-lived feignkit
// pieces such as the client context, and a Registry that starts them in
// order and stops them in reverse.
package component

// Package version reports the build version of feignkit and the
// User-Agent its HTTP clients send by default.
package version

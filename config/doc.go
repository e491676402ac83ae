// Package config loads feignkit configuration.
//
// Files and environment variables are merged with Viper: a config.yml found
// in the standard search paths is read first, then .env files and the
// process environment override it. LoadConfig decodes the result into a
// struct; LoadSource exposes it as a Source for strict key lookups.
//
//	src, err := config.LoadSource("orders-api")
//	enabled, err := src.Bool("compression.request.enabled", false)
//
// Tests build sources directly from property pairs:
//
//	src, err := config.FromPairs("compression.response.enabled=true")
package config

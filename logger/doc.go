// Package logger provides structured logging for feignkit using zerolog.
//
// Loggers are created from Config and tagged per component:
//
//	log := logger.WithComponent("compression")
//	log.Info("interceptor registered", logger.Fields(logger.FieldInterceptor, name))
package logger

// Package logger provides structured logging for the resolver library
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("registry")
//	log.Debug("service registered", logger.Fields("service", key))
package logger

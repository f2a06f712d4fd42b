// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both interactive use (console
// encoding, colored levels) and machine consumption (json encoding).
//
// # Run correlation
//
// The process is a one-shot reconciliation run, so runs, not requests, are
// the correlation unit. WithRunID tags a logger with a fresh run identifier
// that appears on every line of that run.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (development) or json (production)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("Run started")
package logger

// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The terminal UI owns stdout, so the UI binary points OutputPaths at a
// file; the development host logs to stdout.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("host listening", zap.String("addr", addr))
//	logger.Error("bridge call failed", zap.String("op", op), zap.Error(err))
package logging

// Package logging provides structured logging utilities for the mapping builder.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so the CLI and the API server log the same way. It supports environment-based
// log level configuration, module/version context injection, and source
// location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages, e.g. unknown value types
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("emb", version)
//	    slog.Info("conversion complete", "fields", 12)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("emb", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is given:
//
//	LOG_LEVEL=debug emb infer --input record.json
//
// # Output Format
//
// All logs are written to stderr in JSON format so they never mix with a
// mapping written to stdout:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "unknown type",
//	    "module": "emb",
//	    "version": "v1.0.0",
//	    "type": "complex128"
//	}
package logging

// Package logging provides structured logging utilities for donutdex components.
//
// # Overview
//
// This package wraps the standard library slog package with donutdex-specific
// defaults and conventions for consistent logging across the CLI and the API
// daemon. It supports environment-based log level configuration, module and
// version context injection, and automatic source location tracking for debug
// logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("donutdex", "v1.0.0")
//
//	    slog.Info("searching", "limit", 50)
//	    slog.Debug("detailed state", "spec", spec)
//	    slog.Error("cook failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("donutdexd", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug donutdex search
//	LOG_LEVEL=error donutdexd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "catalog loaded",
//	    "module": "donutdex",
//	    "version": "v1.0.0",
//	    "recipes": 120
//	}
//
// Debug logs additionally include source location.
package logging

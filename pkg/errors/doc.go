// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInternal,
//	    "failed to persist inventory",
//	    cause,
//	    map[string]interface{}{
//	        "berries": len(changed),
//	        "db":      dsn,
//	    },
//	)
package errors

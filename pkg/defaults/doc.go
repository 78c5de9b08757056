// Package defaults provides centralized configuration constants for donutdex.
//
// This package defines timeout values, result limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
// Constants are organized by component:
//
//   - Search limits: result caps for the matching engine
//   - Storage timeouts: for database operations
//   - Server timeouts: for HTTP server configuration
//   - HTTP client timeouts: for outbound catalog downloads
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/zadonuts/donutdex/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.StorageTimeout)
//	defer cancel()
package defaults

package defaults

import "time"

// Search limits for the matching engine.
const (
	// ResultLimit is the maximum number of recipes returned by a search.
	// Applied after sorting so the best-ranked entries survive truncation.
	ResultLimit = 50

	// MaxStars is the highest star rating a recipe can carry.
	MaxStars = 5
)

// Storage settings for database access.
const (
	// DatabasePath is the sqlite file used when no DSN is configured.
	DatabasePath = "donutdex.db"

	// StorageTimeout is the default timeout for single storage operations.
	StorageTimeout = 10 * time.Second

	// StorageOpenTimeout is the timeout for opening and bootstrapping
	// the database, including schema creation and first-run seeding.
	StorageOpenTimeout = 30 * time.Second

	// SQLiteBusyTimeoutMS is the busy handler wait passed to the sqlite
	// driver, in milliseconds.
	SQLiteBusyTimeoutMS = 5000
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// SearchHandlerTimeout is the timeout for recipe search requests.
	SearchHandlerTimeout = 15 * time.Second

	// ImportHandlerTimeout is the timeout for inventory import requests.
	// Longer than search because it persists every accepted row.
	ImportHandlerTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests (catalog downloads).
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Import limits for the CSV boundary.
const (
	// MaxImportBytes caps the size of an uploaded inventory CSV.
	MaxImportBytes = 1 << 20 // 1 MiB

	// MaxArchiveBytes caps the extracted size of a packaged catalog
	// database pulled from a zip archive.
	MaxArchiveBytes = 64 << 20 // 64 MiB
)

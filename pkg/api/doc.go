// Package api provides the HTTP API layer for the donutdex recipe matching service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with application-specific routes and handlers. It opens the
// backing database, seeds the embedded catalog on first run, and exposes the
// recipe search, cooking, and inventory functionality via REST API. Note: the
// API server does not manage the database itself (init, restore); use the CLI
// for these operations.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "github.com/zadonuts/donutdex/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(context.Background()); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Opening storage and building the catalog, inventory, and matcher
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET  /v1/recipes          - Search craftable recipes by flavor and stat ranges
//   - POST /v1/cook             - Cook one recipe, consuming its berries
//   - GET  /v1/inventory        - List berry quantities
//   - PUT  /v1/inventory        - Bulk-set berry quantities
//   - POST /v1/inventory/import - Import quantities from a CSV body
//   - GET  /v1/inventory/export - Export quantities as CSV
//   - GET  /v1/berries          - List the berry names the catalog knows
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check (verifies database connectivity)
//   - GET /metrics - Prometheus metrics
//
// # Query Parameters (GET /v1/recipes)
//
// The /v1/recipes endpoint accepts these query parameters:
//   - sweet, spicy, sour, bitter, fresh: Inclusive flavor range, MIN:MAX or a single value
//   - stat: Secondary attribute (stars, flavor_sum, final_boost, final_calories)
//   - statRange: Inclusive range for the stat parameter
//   - minBerries: Rank cheapest-first instead of highest-flavor-first (true/false)
//   - limit: Maximum number of recipes to return
//
// # Request Body (POST /v1/cook)
//
// POST /v1/cook accepts a JSON body naming the recipe to cook:
//
//	{"recipeId": 17}
//
// Example curl command:
//
//	curl -X POST http://localhost:8080/v1/cook \
//	  -H "Content-Type: application/json" \
//	  -d '{"recipeId": 17}'
//
// # Configuration
//
// The server is configured via environment variables:
//   - DONUTDEX_DB: Database DSN, a sqlite file path or a postgres:// URL (default: donutdex.db)
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/zadonuts/donutdex/pkg/api.version=1.0.0'"
package api

// Package server implements the donutdex HTTP API: recipe search,
// cooking, and berry inventory management over JSON, plus a CSV
// import/export boundary for bulk inventory updates.
//
// # Architecture
//
// The server is a thin display layer over the matching engine. All
// domain state lives in the inventory store and the recipe catalog;
// handlers parse, delegate, and render. Collaborators are passed in
// explicitly through options, never discovered through globals:
//
//	s := server.New(
//	    server.WithName("donutdexd"),
//	    server.WithVersion(version),
//	    server.WithCatalog(cat),
//	    server.WithInventory(store),
//	    server.WithMatcher(m),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Routes whose collaborator is missing are simply not mounted, so a
// bare New() still yields a servable instance for probing.
//
// # API Endpoints
//
//	GET  /v1/recipes           search with filter query params
//	POST /v1/cook              cook a recipe: {"recipeId": N}
//	GET  /v1/berries           catalog berry names
//	GET  /v1/inventory         current quantities, name sorted
//	PUT  /v1/inventory         merge quantities: {"entries": [...]}
//	POST /v1/inventory/import  CSV body (berry_name, quantity)
//	GET  /v1/inventory/export  CSV download
//	GET  /health               liveness probe, always 200
//	GET  /ready                readiness probe, 503 until serving
//	GET  /metrics              Prometheus metrics
//
// # Observability
//
// Every request carries an X-Request-Id (accepted from the client when
// it is a valid UUID, generated otherwise) that is echoed in the
// response header and in error envelopes. Rate limit state is exposed
// through X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset; a rejected request gets 429 with Retry-After.
//
// # Error Handling
//
// All errors share one JSON envelope:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "range minimum 800 exceeds maximum 400",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-08-23T12:00:00Z",
//	  "retryable": false
//	}
//
// Structured error codes map onto HTTP statuses: INVALID_REQUEST 400,
// NOT_FOUND 404, METHOD_NOT_ALLOWED 405, RATE_LIMIT_EXCEEDED 429,
// SERVICE_UNAVAILABLE 503, TIMEOUT 504, everything else 500.
package server

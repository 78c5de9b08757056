package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	dxerrors "github.com/zadonuts/donutdex/pkg/errors"
	"github.com/zadonuts/donutdex/pkg/serializer"
)

// setupRoutes builds the mux. System endpoints bypass the middleware
// chain so probes and scrapes are never rate limited; everything else,
// the root listing included, runs behind it.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	if s.config.Handlers == nil {
		s.config.Handlers = make(map[string]http.HandlerFunc)
	}

	// Domain routes mount only when their collaborator is wired, so a
	// bare New() still yields a servable instance.
	if s.matcher != nil {
		s.config.Handlers["/v1/recipes"] = s.handleSearch
		s.config.Handlers["/v1/cook"] = s.handleCook
	}
	if s.store != nil {
		s.config.Handlers["/v1/inventory"] = s.handleInventory
		s.config.Handlers["/v1/inventory/import"] = s.handleImport
		s.config.Handlers["/v1/inventory/export"] = s.handleExport
	}
	if s.catalog != nil {
		s.config.Handlers["/v1/berries"] = s.handleBerries
	}

	if _, exists := s.config.Handlers["/"]; !exists {
		s.config.Handlers["/"] = s.handleRoot
	}

	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// handleRoot lists the mounted routes for API discovery.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	routes := make([]string, 0, len(s.config.Handlers)+3)
	for path := range s.config.Handlers {
		if path == "/" {
			continue
		}
		routes = append(routes, path)
	}
	routes = append(routes, "/health", "/ready", "/metrics")
	sort.Strings(routes)

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, rootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    routes,
	})
}

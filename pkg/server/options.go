package server

import (
	"context"
	"net/http"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/inventory"
	"github.com/zadonuts/donutdex/pkg/matcher"
)

// Option configures the server during construction.
type Option func(*Server)

// WithName sets the server name reported on the root route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the version reported on the root route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithConfig replaces the parsed default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithHandler mounts additional routes behind the middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithMatcher wires the search and cook engine. The recipe routes are
// mounted only when a matcher is present.
func WithMatcher(m *matcher.Matcher) Option {
	return func(s *Server) {
		s.matcher = m
	}
}

// WithInventory wires the berry inventory store. The inventory routes
// are mounted only when a store is present.
func WithInventory(store *inventory.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithCatalog wires the recipe catalog backing the berry listing route
// and import suggestions.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Server) {
		s.catalog = cat
	}
}

// WithReadyCheck installs a probe consulted by the readiness endpoint,
// typically a storage ping.
func WithReadyCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.readyCheck = check
	}
}

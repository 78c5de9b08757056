package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/defaults"
	dxerrors "github.com/zadonuts/donutdex/pkg/errors"
	"github.com/zadonuts/donutdex/pkg/inventory"
	"github.com/zadonuts/donutdex/pkg/matcher"
	"github.com/zadonuts/donutdex/pkg/serializer"
)

// handleSearch handles GET /v1/recipes.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	spec, err := matcher.ParseFilter(r.URL.Query())
	if err != nil {
		WriteErrorFromErr(w, r, err, "invalid search query", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.SearchHandlerTimeout)
	defer cancel()

	result, err := s.matcher.Search(ctx, spec)
	if err != nil {
		WriteErrorFromErr(w, r, err, "search failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// handleCook handles POST /v1/cook.
func (s *Server) handleCook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	var req CookRequest
	body := http.MaxBytesReader(w, r.Body, defaults.MaxImportBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"malformed request body", false, nil)
		return
	}
	if req.RecipeID <= 0 {
		WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"recipeId must be positive", false, nil)
		return
	}

	result, err := s.matcher.Cook(r.Context(), req.RecipeID)
	if err != nil {
		WriteErrorFromErr(w, r, err, "cook failed", map[string]any{"recipeId": req.RecipeID})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// handleInventory handles GET and PUT /v1/inventory.
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleInventoryGet(w, r)
	case http.MethodPut:
		s.handleInventoryPut(w, r)
	default:
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
	}
}

func (s *Server) handleInventoryGet(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, InventoryResponse{
		Entries: displayEntries(s.store.Entries()),
	})
}

func (s *Server) handleInventoryPut(w http.ResponseWriter, r *http.Request) {
	var req InventoryUpdateRequest
	body := http.MaxBytesReader(w, r.Body, defaults.MaxImportBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"malformed request body", false, nil)
		return
	}
	if len(req.Entries) == 0 {
		WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"no entries provided", false, nil)
		return
	}

	applied, err := s.store.BulkLoad(r.Context(), req.Entries)
	if err != nil {
		WriteErrorFromErr(w, r, err, "inventory update failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, InventoryUpdateResponse{
		Applied: applied,
		Entries: displayEntries(s.store.Entries()),
	})
}

// handleImport handles POST /v1/inventory/import. The body is a CSV
// with berry_name and quantity columns; unknown names are reported
// back with suggestions instead of failing the import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ImportHandlerTimeout)
	defer cancel()

	body := http.MaxBytesReader(w, r.Body, defaults.MaxImportBytes)
	entries, skipped, err := inventory.ReadCSV(body, s.berryNames())
	if err != nil {
		WriteErrorFromErr(w, r, err, "import failed", nil)
		return
	}

	applied := 0
	if len(entries) > 0 {
		applied, err = s.store.BulkLoad(ctx, entries)
		if err != nil {
			WriteErrorFromErr(w, r, err, "import failed", nil)
			return
		}
	}

	serializer.RespondJSON(w, http.StatusOK, ImportResponse{
		Applied: applied,
		Skipped: skipped,
	})
}

// handleExport handles GET /v1/inventory/export. The CSV is rendered
// before any header is written so a failure still gets a clean error
// envelope.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	var buf bytes.Buffer
	if err := inventory.WriteCSV(&buf, s.store.Entries()); err != nil {
		WriteErrorFromErr(w, r, err, "export failed", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write export response", "error", err)
	}
}

// handleBerries handles GET /v1/berries.
func (s *Server) handleBerries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	names := s.catalog.BerryNames()
	display := make([]string, len(names))
	for i, name := range names {
		display[i] = catalog.DisplayName(name)
	}

	serializer.RespondJSON(w, http.StatusOK, BerriesResponse{
		Berries: display,
		Count:   len(display),
	})
}

// berryNames returns the canonical name set used for import
// suggestions. The store key set mirrors the catalog, so either
// serves when only one is wired.
func (s *Server) berryNames() []string {
	if s.catalog != nil {
		return s.catalog.BerryNames()
	}
	entries := s.store.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// displayEntries maps canonical berry names to their display casing
// for API responses.
func displayEntries(entries []inventory.Entry) []inventory.Entry {
	for i := range entries {
		entries[i].Name = catalog.DisplayName(entries[i].Name)
	}
	return entries
}

package server

import (
	"time"

	"github.com/zadonuts/donutdex/pkg/inventory"
)

// ErrorResponse is the JSON error envelope returned by every failed
// request.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// CookRequest asks the engine to cook one recipe by id.
type CookRequest struct {
	RecipeID int64 `json:"recipeId"`
}

// InventoryResponse lists the inventory, name sorted with display
// casing.
type InventoryResponse struct {
	Entries []inventory.Entry `json:"entries"`
}

// InventoryUpdateRequest merges quantities into the inventory.
type InventoryUpdateRequest struct {
	Entries []inventory.Entry `json:"entries"`
}

// InventoryUpdateResponse reports the merge outcome and the resulting
// inventory.
type InventoryUpdateResponse struct {
	Applied int               `json:"applied"`
	Entries []inventory.Entry `json:"entries"`
}

// ImportResponse reports a CSV import outcome, including rows skipped
// for unknown berry names.
type ImportResponse struct {
	Applied int                 `json:"applied"`
	Skipped []inventory.Skipped `json:"skipped,omitempty"`
}

// BerriesResponse lists the catalog berry names.
type BerriesResponse struct {
	Berries []string `json:"berries"`
	Count   int      `json:"count"`
}

type rootResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Ready     bool     `json:"ready"`
	Timestamp string   `json:"timestamp"`
	Routes    []string `json:"routes"`
}

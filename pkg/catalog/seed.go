package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Document is the serialized catalog shape: recipes under a single
// top-level key, as in the embedded seed file.
type Document struct {
	Recipes []Recipe `json:"recipes" yaml:"recipes"`
}

var (
	//go:embed data/recipes.yaml
	seedData []byte

	seedOnce    sync.Once
	seedRecipes []Recipe
	seedErr     error
)

// EmbeddedRecipes returns a fresh copy of the recipe seed compiled into
// the binary. The raw seed is decoded once; every call deep-copies it so
// callers can never reach the shared decoded state.
func EmbeddedRecipes() ([]Recipe, error) {
	seedOnce.Do(func() {
		var doc Document
		if err := yaml.Unmarshal(seedData, &doc); err != nil {
			seedErr = fmt.Errorf("failed to unmarshal seed catalog: %w", err)
			return
		}
		seedRecipes = doc.Recipes
	})
	if seedErr != nil {
		return nil, seedErr
	}

	out := make([]Recipe, 0, len(seedRecipes))
	for i := range seedRecipes {
		out = append(out, *seedRecipes[i].Clone())
	}
	return out, nil
}

// Embedded builds a Catalog from the recipe seed compiled into the binary.
func Embedded() (*Catalog, error) {
	recipes, err := EmbeddedRecipes()
	if err != nil {
		return nil, err
	}

	seedLoads.Inc()
	return New(recipes)
}

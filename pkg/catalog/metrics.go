package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog load metrics
	catalogRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "donutdex_catalog_recipes",
			Help: "Number of recipes in the most recently built catalog",
		},
	)

	seedLoads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "donutdex_catalog_seed_loads_total",
			Help: "Total number of catalogs built from the embedded seed",
		},
	)
)

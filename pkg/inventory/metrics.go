package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bulkLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donutdex_inventory_bulk_loads_total",
		Help: "Total number of applied inventory bulk loads.",
	})

	decrements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donutdex_inventory_decrements_total",
		Help: "Total number of persisted single-berry decrements.",
	})

	refreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donutdex_inventory_refreshes_total",
		Help: "Total number of inventory reloads from storage.",
	})

	importSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donutdex_inventory_import_skipped_total",
		Help: "Total number of import entries skipped for unknown berry names.",
	})
)

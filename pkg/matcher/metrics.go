package matcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var (
	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "donutdex_matcher_search_duration_seconds",
			Help:    "Duration of recipe searches in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	searchMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "donutdex_matcher_search_matches",
			Help:    "Number of recipes matched per search before truncation",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donutdex_matcher_searches_total",
			Help: "Total number of recipe searches by status",
		},
		[]string{"status"},
	)

	cooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donutdex_matcher_cooks_total",
			Help: "Total number of cook attempts by status",
		},
		[]string{"status"},
	)
)

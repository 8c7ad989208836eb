// Package metrics holds the prometheus collectors shared by every binary.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fabmap_mutations_total",
		Help: "Pin and fabricator mutations by operation and outcome",
	}, []string{"op", "outcome"})
	ReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_reloads_total",
		Help: "Total full pin list reloads",
	})
	ReloadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fabmap_reload_duration_ms",
		Help:    "Full pin list reload duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	GeocodeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_geocode_requests_total",
		Help: "Total geocoder HTTP requests",
	})
	GeocodeFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_geocode_fail_total",
		Help: "Total geocoder HTTP failures",
	})
	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fabmap_geocode_duration_ms",
		Help:    "Geocoder HTTP call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_geocode_cache_hits_total",
		Help: "Total geocoder redis cache hits",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_geocode_cache_misses_total",
		Help: "Total geocoder redis cache misses",
	})
	StaleSearchResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fabmap_stale_search_results_total",
		Help: "Search responses discarded because a newer one was already applied",
	})
)

func init() {
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(ReloadsTotal)
	prometheus.MustRegister(ReloadDurationMs)
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeFailTotal)
	prometheus.MustRegister(GeocodeDurationMs)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
	prometheus.MustRegister(StaleSearchResultsTotal)
}

// Outcome labels for MutationsTotal
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Handler exposes the registered collectors for scraping
func Handler() http.Handler { return promhttp.Handler() }

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Read-path counters, labeled by the partition served. These are a side
// channel only: the data access layer never branches on them.
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "cache_hits_total",
		Help:      "Reads served from the cache.",
	}, []string{"partition"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "cache_misses_total",
		Help:      "Reads that missed the cache.",
	}, []string{"partition"})

	BackendFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "backend_fetches_total",
		Help:      "Reads that fell back to the search backend.",
	}, []string{"partition"})

	CacheWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "cache_write_errors_total",
		Help:      "Cache population attempts that failed.",
	}, []string{"partition"})
)

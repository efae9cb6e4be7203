package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	PlacesEnhanced      prometheus.Counter
	PlacesSkipped       prometheus.Counter
	DetailFetches       *prometheus.CounterVec
	EnhancementTime     prometheus.Histogram
	CacheEntriesRemoved prometheus.Counter
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		PlacesEnhanced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_enhanced_total",
			Help:      "The total number of places enhanced with external detail data",
		}),
		PlacesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_skipped_total",
			Help:      "The total number of places skipped as already complete",
		}),
		DetailFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_fetches_total",
			Help:      "The total number of places API detail fetches by outcome",
		}, []string{"outcome"}),
		EnhancementTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "place_enhancement_time_seconds",
			Help:      "Time taken to enhance one place",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheEntriesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_entries_removed_total",
			Help:      "The total number of expired freshness-cache entries removed",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

package observability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "external_requests_total", Help: "Outbound marketplace requests."},
		[]string{"service", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "cache_events_total", Help: "Enrichment cache hits/misses/sets."},
		[]string{"cache", "event"}, // event: hit|miss|set|fail
	)
	RegionUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "region_updates_total", Help: "Document region replacements."},
		[]string{"region", "result"}, // result: ok|skipped
	)
	ProductsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "products_total", Help: "Products built or dropped per category."},
		[]string{"category", "result"}, // result: built|dropped
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, CacheEvents, RegionUpdates, ProductsBuilt)
	return reg
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// An empty path disables the dump.
func WriteTextfile(path string, reg *prometheus.Registry) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func ObserveExternal(service string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|fail
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveRegion(region string, ok bool) {
	result := "ok"
	if !ok {
		result = "skipped"
	}
	RegionUpdates.WithLabelValues(region, result).Inc()
}

func ObserveProduct(category string, built bool) {
	result := "built"
	if !built {
		result = "dropped"
	}
	ProductsBuilt.WithLabelValues(category, result).Inc()
}

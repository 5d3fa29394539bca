package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route pattern and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// RouteCandidates records how many candidate routes one optimization priced.
	RouteCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_candidates_evaluated",
			Help:    "Candidate routes priced per optimization.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
	// QuoteCacheLookups counts quote cache lookups by result (hit, miss, error).
	QuoteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quote_cache_lookups_total", Help: "Quote cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RouteCandidates)
		Registry.MustRegister(QuoteCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DirectoryRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailblazer_directory_requests_total",
		Help: "Directory API page requests by result",
	}, []string{"result"})
	DirectoryRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trailblazer_directory_retries_total",
		Help: "Directory API request retries after transient failures",
	})
	DirectoryDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trailblazer_directory_request_duration_ms",
		Help:    "Directory API request duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	ImportRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailblazer_import_records_total",
		Help: "Imported directory records by reconciliation outcome",
	}, []string{"outcome"})
	NearbyQueryDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trailblazer_nearby_query_duration_ms",
		Help:    "Nearby park query duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	NearbyScannedParks = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trailblazer_nearby_scanned_parks",
		Help:    "Located parks scanned per nearby query",
		Buckets: prometheus.ExponentialBuckets(10, 4, 7),
	})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailblazer_park_cache_lookups_total",
		Help: "Park cache lookups by result",
	}, []string{"result"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trailblazer_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(DirectoryRequestsTotal)
	prometheus.MustRegister(DirectoryRetriesTotal)
	prometheus.MustRegister(DirectoryDurationMs)
	prometheus.MustRegister(ImportRecordsTotal)
	prometheus.MustRegister(NearbyQueryDurationMs)
	prometheus.MustRegister(NearbyScannedParks)
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }

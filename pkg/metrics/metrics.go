// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "figma_mcp_pipeline_runs_total",
			Help: "Number of get_figma_data runs by outcome and output format",
		},
		[]string{"status", "format"},
	)

	PipelineErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "figma_mcp_pipeline_errors_total",
			Help: "Number of failed get_figma_data runs by error kind",
		},
		[]string{"kind"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "figma_mcp_pipeline_duration_seconds",
			Help:    "Duration of get_figma_data stages",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	NodesEmitted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "figma_mcp_nodes_emitted",
		Help:    "Number of simplified nodes per response",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	ResponseBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "figma_mcp_response_bytes",
		Help:    "Size of the formatted response text",
		Buckets: prometheus.ExponentialBuckets(256, 4, 10),
	})

	// Image download metrics
	ImagesDownloaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "figma_mcp_images_downloaded_total",
			Help: "Number of image downloads by outcome",
		},
		[]string{"status"},
	)

	// System metrics
	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "figma_mcp_goroutines",
		Help: "Number of goroutines",
	})

	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "figma_mcp_memory_bytes",
		Help: "Current heap allocation",
	})
)

// UpdateSystemMetrics refreshes the system gauges.
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}

// Handler serves the default registry, refreshing the system gauges on every scrape.
func Handler() http.Handler {
	h := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UpdateSystemMetrics()
		h.ServeHTTP(w, r)
	})
}

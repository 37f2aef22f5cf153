package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choropleth_fetch_requests_total",
		Help: "Dataset fetch attempts",
	}, []string{"dataset"})
	FetchFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choropleth_fetch_fail_total",
		Help: "Dataset fetch failures (network, status or decode)",
	}, []string{"dataset"})
	FetchCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choropleth_fetch_cache_hits_total",
		Help: "Dataset bodies served from redis",
	}, []string{"dataset"})
	FetchDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "choropleth_fetch_duration_ms",
		Help:    "Dataset fetch duration in milliseconds",
		Buckets: []float64{5, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"dataset"})
	RendersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "choropleth_renders_total",
		Help: "Completed renders",
	})
	RenderFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "choropleth_render_fail_total",
		Help: "Renders aborted by malformed input",
	})
	RenderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "choropleth_render_duration_ms",
		Help:    "Render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
	UnmatchedRegions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "choropleth_unmatched_regions",
		Help: "Counties without an education record in the last render",
	})
	PublishFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choropleth_publish_fail_total",
		Help: "Artifact publish failures by sink",
	}, []string{"sink"})
)

func init() {
	prometheus.MustRegister(
		FetchRequestsTotal,
		FetchFailTotal,
		FetchCacheHitsTotal,
		FetchDurationMs,
		RendersTotal,
		RenderFailTotal,
		RenderDurationMs,
		UnmatchedRegions,
		PublishFailTotal,
	)
}

// Handler：Prometheus 抓取入口，由 serve 挂载到 /metrics
func Handler() http.Handler { return promhttp.Handler() }

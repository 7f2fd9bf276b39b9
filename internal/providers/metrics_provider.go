package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"instarecipe/internal/structures"
)

type MetricsProviderInterface interface {
	IncFetchAttempts()
	IncFetchFailures()
	IncModelAttempts(model string)
	IncModelSuccesses(model string)
	IncModelFailures(model string)
	ObserveModelDuration(model string, seconds float64)
	ObservePersistenceDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	SetPostsTotal(count int)
	SetProcessedPosts(count int)
}

type MetricsProvider struct {
	fetchAttempts       prometheus.Counter
	fetchFailures       prometheus.Counter
	modelAttempts       *prometheus.CounterVec
	modelSuccesses      *prometheus.CounterVec
	modelFailures       *prometheus.CounterVec
	modelDuration       *prometheus.HistogramVec
	persistenceDuration prometheus.Histogram
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	postsTotal          prometheus.Gauge
	processedPosts      prometheus.Gauge
}

func (m *MetricsProvider) IncFetchAttempts() { m.fetchAttempts.Inc() }
func (m *MetricsProvider) IncFetchFailures() { m.fetchFailures.Inc() }

func (m *MetricsProvider) IncModelAttempts(model string) {
	m.modelAttempts.WithLabelValues(model).Inc()
}

func (m *MetricsProvider) IncModelSuccesses(model string) {
	m.modelSuccesses.WithLabelValues(model).Inc()
}

func (m *MetricsProvider) IncModelFailures(model string) {
	m.modelFailures.WithLabelValues(model).Inc()
}

func (m *MetricsProvider) ObserveModelDuration(model string, seconds float64) {
	m.modelDuration.WithLabelValues(model).Observe(seconds)
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits()   { m.cacheHits.Inc() }
func (m *MetricsProvider) IncCacheMisses() { m.cacheMisses.Inc() }

func (m *MetricsProvider) SetPostsTotal(count int) {
	m.postsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetProcessedPosts(count int) {
	m.processedPosts.Set(float64(count))
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		fetchAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "instarecipe_fetch_attempts_total",
			Help: "Total number of caption fetch attempts",
		}),
		fetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "instarecipe_fetch_failures_total",
			Help: "Total number of failed caption fetches",
		}),
		modelAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "instarecipe_model_attempts_total",
			Help: "Total number of model invocation attempts",
		}, []string{"model"}),
		modelSuccesses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "instarecipe_model_successes_total",
			Help: "Total number of accepted model results",
		}, []string{"model"}),
		modelFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "instarecipe_model_failures_total",
			Help: "Total number of (post, model) pairs failed after retries",
		}, []string{"model"}),
		modelDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "instarecipe_model_duration_seconds",
			Help:    "Model invocation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"model"}),
		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "instarecipe_persistence_duration_seconds",
			Help:    "Duration of progress persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "instarecipe_cache_hits_total",
			Help: "Total number of thumbnail cache hits",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "instarecipe_cache_misses_total",
			Help: "Total number of thumbnail cache misses",
		}),
		postsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "instarecipe_posts_total",
			Help: "Number of posts extracted from the configured collection",
		}),
		processedPosts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "instarecipe_processed_posts",
			Help: "Number of posts with at least one accepted model result",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncFetchAttempts()                           {}
func (n *noopMetrics) IncFetchFailures()                           {}
func (n *noopMetrics) IncModelAttempts(_ string)                   {}
func (n *noopMetrics) IncModelSuccesses(_ string)                  {}
func (n *noopMetrics) IncModelFailures(_ string)                   {}
func (n *noopMetrics) ObserveModelDuration(_ string, _ float64)    {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                               {}
func (n *noopMetrics) IncCacheMisses()                             {}
func (n *noopMetrics) SetPostsTotal(_ int)                         {}
func (n *noopMetrics) SetProcessedPosts(_ int)                     {}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gitmentor"

// Cache lookup results
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
)

var (
	actionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Pipeline runs by action and outcome",
	}, []string{"action", "outcome"})

	cacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Inference cache lookups by result",
	}, []string{"result"})

	githubRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "github_requests_total",
		Help:      "GitHub API requests by HTTP status (0 when no response was received)",
	}, []string{"status"})

	inferenceDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Latency of language model completions",
		Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
	})
)

func init() {
	prometheus.MustRegister(actionsTotal, cacheLookupsTotal, githubRequestsTotal, inferenceDuration)
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordAction(action, outcome string) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
}

func RecordCacheLookup(result string) {
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

func RecordGitHubRequest(status int) {
	githubRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

func ObserveInference(d time.Duration) {
	inferenceDuration.Observe(d.Seconds())
}

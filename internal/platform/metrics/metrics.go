// Package metrics exposes the Prometheus collectors of the analysis engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "fpl_analyst"

// Recorder owns a private registry and the collectors registered on it. A nil
// Recorder is valid and records nothing.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	recordsIngested  prometheus.Counter
	lastRunRecords   prometheus.Gauge
	lastRunUnix      prometheus.Gauge
	recipeFailures   *prometheus.CounterVec
	artifactsWritten prometheus.Counter
	cacheLookups     *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

type Option func(*Recorder)

func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithGoCollectors adds the Go runtime and process collectors.
func WithGoCollectors() Option {
	return func(r *Recorder) {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.runsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Total number of analysis runs by outcome",
	}, []string{"status"})
	r.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "analysis",
		Name:      "run_duration_seconds",
		Help:      "Duration of analysis runs in seconds",
		Buckets:   r.buckets,
	})
	r.recordsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "ingestion",
		Name:      "records_total",
		Help:      "Total number of gameweek records loaded",
	})
	r.lastRunRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "analysis",
		Name:      "last_run_records",
		Help:      "Number of records in the last successful run",
	})
	r.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "analysis",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	})
	r.recipeFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "curation",
		Name:      "recipe_failures_total",
		Help:      "Total number of recipe runs that degraded to an empty list",
	}, []string{"recipe"})
	r.artifactsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "artifacts",
		Name:      "written_total",
		Help:      "Total number of artifacts written",
	})
	r.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Total number of cache lookups by cache and result",
	}, []string{"cache", "result"})
	r.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "dependency",
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state per dependency: 0 closed, 1 half open, 2 open",
	}, []string{"dependency"})
	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status_code"})
	r.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   r.buckets,
	}, []string{"route", "method", "status_code"})

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry(), promhttp.HandlerOpts{})
}

func (r *Recorder) RunCompleted(records int, duration time.Duration) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues("success").Inc()
	r.runDuration.Observe(duration.Seconds())
	r.lastRunRecords.Set(float64(records))
	r.lastRunUnix.Set(float64(time.Now().Unix()))
}

func (r *Recorder) RunFailed(duration time.Duration) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues("failure").Inc()
	r.runDuration.Observe(duration.Seconds())
}

func (r *Recorder) RecordsIngested(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.recordsIngested.Add(float64(n))
}

func (r *Recorder) RecipeFailed(recipe string) {
	if r == nil {
		return
	}
	r.recipeFailures.WithLabelValues(recipe).Inc()
}

func (r *Recorder) ArtifactsWritten(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.artifactsWritten.Add(float64(n))
}

func (r *Recorder) HTTPRequest(route, method string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	code := strconv.Itoa(status)
	r.httpRequests.WithLabelValues(route, method, code).Inc()
	r.httpRequestDuration.WithLabelValues(route, method, code).Observe(duration.Seconds())
}

func (r *Recorder) CacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

// BreakerState takes the numeric state: 0 closed, 1 half open, 2 open.
func (r *Recorder) BreakerState(dependency string, state int) {
	if r == nil {
		return
	}
	r.breakerState.WithLabelValues(dependency).Set(float64(state))
}

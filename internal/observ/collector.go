package observ

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for FilesParsed.
const (
	ResultOK        = "ok"
	ResultLexError  = "lex_error"
	ResultSyntax    = "syntax_error"
	ResultIOError   = "io_error"
	ResultCheckFail = "check_failed"
)

// Collector owns the Prometheus metrics of a check/watch run. Metrics live
// in a private registry so tests and repeated runs do not collide on the
// global one.
type Collector struct {
	registry *prometheus.Registry

	filesParsed   *prometheus.CounterVec
	parseDuration prometheus.Histogram
	statements    *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	runs          prometheus.Counter
	lastRun       prometheus.Gauge
}

// NewCollector registers jsslice metrics in registry (nil: fresh registry).
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	const ns = "jsslice"
	c := &Collector{
		registry: registry,
		filesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "files_parsed_total",
			Help:      "Files processed by check, by result.",
		}, []string{"result"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "parse_duration_seconds",
			Help:      "Time to lex and parse one file.",
			// мелкие файлы разбираются за микросекунды
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "statements_total",
			Help:      "Statements parsed, by kind.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_lookups_total",
			Help:      "Summary cache lookups, by outcome.",
		}, []string{"outcome"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "check_runs_total",
			Help:      "Completed check runs (watch re-runs included).",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed check run.",
		}),
	}
	registry.MustRegister(c.filesParsed, c.parseDuration, c.statements, c.cacheLookups, c.runs, c.lastRun)
	return c
}

// Registry exposes the underlying registry for gathering in tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// RecordFile records one processed file. Nil collectors ignore all calls.
func (c *Collector) RecordFile(result string, dur time.Duration) {
	if c == nil {
		return
	}
	c.filesParsed.WithLabelValues(result).Inc()
	if result != ResultIOError {
		c.parseDuration.Observe(dur.Seconds())
	}
}

// RecordStatements adds per-kind statement counts.
func (c *Collector) RecordStatements(directives, lets, exprs int) {
	if c == nil {
		return
	}
	c.statements.WithLabelValues("directive").Add(float64(directives))
	c.statements.WithLabelValues("let").Add(float64(lets))
	c.statements.WithLabelValues("expr").Add(float64(exprs))
}

// RecordCache records a cache hit or miss.
func (c *Collector) RecordCache(hit bool) {
	if c == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	c.cacheLookups.WithLabelValues(outcome).Inc()
}

// RecordRun marks the end of a check run.
func (c *Collector) RecordRun(at time.Time) {
	if c == nil {
		return
	}
	c.runs.Inc()
	c.lastRun.Set(float64(at.Unix()))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

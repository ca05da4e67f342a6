// Package metrics exposes cache, corpus and HTTP activity as Prometheus
// collectors on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-blog/internal/content"
)

// Collector implements cache.Recorder and records corpus builds and HTTP
// requests.
type Collector struct {
	registry *prometheus.Registry

	CacheLookups   *prometheus.CounterVec
	CacheRebuilds  *prometheus.HistogramVec
	CacheFallbacks *prometheus.CounterVec

	CorpusPosts    prometheus.Gauge
	CorpusFailures prometheus.Counter
	CorpusDupes    prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector registers every metric under namespace on a fresh registry,
// so several collectors can coexist in one process.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache reads by slot and result (hit or miss).",
			},
			[]string{"slot", "result"},
		),
		CacheRebuilds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cache_rebuild_duration_seconds",
				Help:      "Time spent rebuilding a cache slot.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"slot", "status"},
		),
		CacheFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_fallbacks_total",
				Help:      "Reads served from a stale value or the default corpus after a failed rebuild.",
			},
			[]string{"slot", "source"},
		),
		CorpusPosts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "corpus_posts",
				Help:      "Posts in the most recently built corpus.",
			},
		),
		CorpusFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corpus_file_failures_total",
				Help:      "Content files skipped because they could not be read or parsed.",
			},
		),
		CorpusDupes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corpus_duplicate_ids_total",
				Help:      "Content files dropped because an earlier file had the same id.",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		c.CacheLookups,
		c.CacheRebuilds,
		c.CacheFallbacks,
		c.CorpusPosts,
		c.CorpusFailures,
		c.CorpusDupes,
		c.HTTPRequests,
		c.HTTPDuration,
	)
	return c
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Hit(slot string) {
	c.CacheLookups.WithLabelValues(slot, "hit").Inc()
}

func (c *Collector) Miss(slot string) {
	c.CacheLookups.WithLabelValues(slot, "miss").Inc()
}

func (c *Collector) Rebuild(slot string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.CacheRebuilds.WithLabelValues(slot, status).Observe(took.Seconds())
}

func (c *Collector) Stale(slot string) {
	c.CacheFallbacks.WithLabelValues(slot, "stale").Inc()
}

func (c *Collector) Default(slot string) {
	c.CacheFallbacks.WithLabelValues(slot, "default").Inc()
}

// ObserveCorpus records the outcome of one corpus build.
func (c *Collector) ObserveCorpus(report content.Report) {
	c.CorpusPosts.Set(float64(report.Built))
	c.CorpusFailures.Add(float64(report.Failed))
	c.CorpusDupes.Add(float64(report.Duplicates))
}

// ObserveRequest records one HTTP request against its route pattern.
func (c *Collector) ObserveRequest(method, route string, status int, took time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

package graphcache

import "github.com/prometheus/client_golang/prometheus"

// metricsSink abstracts the Prometheus backend so Cache can be used with or
// without metrics: the hot path never pays for a metric update when no
// registry was supplied.
type metricsSink interface {
	incHit()
	incMiss()
	incRebuild()
}

type noopMetrics struct{}

func (noopMetrics) incHit()     {}
func (noopMetrics) incMiss()    {}
func (noopMetrics) incRebuild() {}

// PrometheusMetrics is a metricsSink backed by a caller-supplied registry.
type PrometheusMetrics struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	rebuilds prometheus.Counter
}

// NewPrometheusMetrics registers graph-cache counters on reg and returns a
// metricsSink usable with WithMetrics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reachcore_graphcache_hits_total",
			Help: "Graph cache lookups served from a valid on-disk cache entry.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reachcore_graphcache_misses_total",
			Help: "Graph cache lookups that required a rebuild.",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reachcore_graphcache_rebuilds_total",
			Help: "Graph cache rebuilds performed, including corrupt-cache retries.",
		}),
	}
	reg.MustRegister(m.hits, m.misses, m.rebuilds)
	return m
}

func (m *PrometheusMetrics) incHit()     { m.hits.Inc() }
func (m *PrometheusMetrics) incMiss()    { m.misses.Inc() }
func (m *PrometheusMetrics) incRebuild() { m.rebuilds.Inc() }

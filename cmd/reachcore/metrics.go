package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hexterra/reachcore/graphcache"
)

// cacheMetricsOpt is set by startMetricsServer when --metrics-addr is given;
// every graphcache.New call site picks it up via graphcacheOptions so the
// cache's hit/miss/rebuild counters are wired to the same registry the
// /metrics endpoint serves.
var cacheMetricsOpt graphcache.Option

// startMetricsServer registers graph-cache counters on a fresh registry and
// serves them at addr over /metrics. A per-process prometheus.NewRegistry
// rather than the global DefaultRegisterer, so a run never collides with
// another process's metrics when both happen to share a host.
func startMetricsServer(addr string) {
	reg := prometheus.NewRegistry()
	cacheMetricsOpt = graphcache.WithMetrics(graphcache.NewPrometheusMetrics(reg))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}

// graphcacheOptions returns the Cache options every subcommand should pass
// to graphcache.New: a logger always, and the Prometheus sink too once
// --metrics-addr has started one.
func graphcacheOptions() []graphcache.Option {
	opts := []graphcache.Option{graphcache.WithLogger(logger)}
	if cacheMetricsOpt != nil {
		opts = append(opts, cacheMetricsOpt)
	}
	return opts
}

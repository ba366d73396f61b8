package guide

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	crawlPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scribe",
		Name:      "guide_crawl_pages_total",
		Help:      "Pages handled during guide crawls, by outcome",
	}, []string{"status"})

	crawlDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scribe",
		Name:      "guide_crawl_duration_seconds",
		Help:      "Wall-clock duration of full guide crawls",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
	})

	cacheRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scribe",
		Name:      "guide_cache_refresh_total",
		Help:      "Guide cache refresh attempts, by outcome",
	}, []string{"status"})

	contextBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scribe",
		Name:      "guide_context_builds_total",
		Help:      "Context block builds, by outcome",
	}, []string{"outcome"})
)

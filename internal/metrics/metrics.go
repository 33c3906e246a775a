// Package metrics holds the Prometheus collectors for the builder core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ForksTotal counts fork attempts by outcome.
	ForksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitesmith_forks_total",
		Help: "Total website fork attempts by outcome.",
	}, []string{"outcome"})

	// PagesRendered counts static page renders by mode (public, preview).
	PagesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitesmith_pages_rendered_total",
		Help: "Total pages rendered to HTML by mode.",
	}, []string{"mode"})

	// RenderDuration observes end-to-end page materialization latency.
	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sitesmith_render_duration_seconds",
		Help:    "Page materialization latency.",
		Buckets: prometheus.DefBuckets,
	})

	// ComponentsSanitized counts components repaired by the lenient
	// tree validator during bulk operations.
	ComponentsSanitized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitesmith_components_sanitized_total",
		Help: "Components re-parented or repaired during bulk validation.",
	})
)

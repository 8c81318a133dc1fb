// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package metrics declares the Prometheus collectors of the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gastro"

var (
	// DocumentsRenderedTotal counts rendered documents by kind (report, certificate, invoice).
	DocumentsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_rendered_total",
		Help:      "Number of rendered documents.",
	}, []string{"kind"})

	// DocumentRenderDuration observes render time by kind.
	DocumentRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_render_duration_seconds",
		Help:      "Time spent rendering a document.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"kind"})

	// UnlocksTotal counts unlock attempts by result.
	UnlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unlocks_total",
		Help:      "Unlock attempts by result.",
	}, []string{"result"})

	// EmailsSentTotal counts email dispatches by status (sent, failed).
	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Email dispatches by status.",
	}, []string{"status"})

	// ReportUploadsTotal counts report uploads by status.
	ReportUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_uploads_total",
		Help:      "Report uploads to the object store by status.",
	}, []string{"status"})

	// SuggestCacheTotal counts suggestion cache lookups by result (hit, miss, error).
	SuggestCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggest_cache_total",
		Help:      "Suggestion cache lookups by result.",
	}, []string{"result"})

	// EventSubscribers is the number of open event streams.
	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "event_subscribers",
		Help:      "Open server-sent event streams.",
	})
)

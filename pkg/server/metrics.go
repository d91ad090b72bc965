package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Render workflows used as metric labels.
const (
	workflowTemplate  = "template"
	workflowResume    = "resume"
	workflowPortfolio = "portfolio"
	workflowPDF       = "pdf"
)

type metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) (m *metrics) {
	m = &metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_renders_total",
				Help: "Documents rendered, by workflow.",
			},
			[]string{"workflow"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_render_duration_seconds",
				Help:    "Time spent rendering a document, by workflow.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"workflow"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_render_failures_total",
				Help: "Render requests rejected or failed, by workflow.",
			},
			[]string{"workflow"},
		),
	}

	registry.MustRegister(m.renders, m.duration, m.failures)
	return m
}

func (m *metrics) observe(workflow string, started time.Time) {
	m.renders.WithLabelValues(workflow).Inc()
	m.duration.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
}

func (m *metrics) fail(workflow string) {
	m.failures.WithLabelValues(workflow).Inc()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records price resolution and pricelist engine activity.
type PricingMetrics struct {
	duration   *prometheus.HistogramVec
	templates  prometheus.Counter
	candidates prometheus.Histogram
	batches    *prometheus.CounterVec
	rules      *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minimal_price_resolution_seconds",
		Help:    "Duration of minimal price resolutions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	templates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "minimal_price_templates_total",
		Help: "Templates resolved for their cheapest variant.",
	})
	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "minimal_price_candidates",
		Help:    "Candidate variants evaluated per template.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricelist_price_batches_total",
		Help: "Batched pricelist price computations.",
	}, []string{"target"})
	rules := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricelist_rule_applications_total",
		Help: "Prices computed per pricing method.",
	}, []string{"method"})
	reg.MustRegister(duration, templates, candidates, batches, rules)
	return &PricingMetrics{
		duration:   duration,
		templates:  templates,
		candidates: candidates,
		batches:    batches,
		rules:      rules,
	}
}

// ObserveDuration records how long the named resolver operation took.
func (m *PricingMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// AddTemplates counts resolved templates.
func (m *PricingMetrics) AddTemplates(n int) {
	if m == nil || m.templates == nil || n <= 0 {
		return
	}
	m.templates.Add(float64(n))
}

// ObserveCandidates records the size of one template's candidate set.
func (m *PricingMetrics) ObserveCandidates(n int) {
	if m == nil || m.candidates == nil {
		return
	}
	m.candidates.Observe(float64(n))
}

// IncBatch counts one batched engine call for the given target kind.
func (m *PricingMetrics) IncBatch(target string) {
	if m == nil || m.batches == nil {
		return
	}
	m.batches.WithLabelValues(normalizeLabel(target)).Inc()
}

// IncRule counts one price computed with the given method.
func (m *PricingMetrics) IncRule(method string) {
	if m == nil || m.rules == nil {
		return
	}
	m.rules.WithLabelValues(normalizeLabel(method)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

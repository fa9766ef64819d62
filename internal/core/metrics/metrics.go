// Package metrics exposes the Prometheus collectors of the quoting engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder records engine outcomes. The zero value of *Recorder is a valid no-op.
type Recorder struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	candidates *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rate_shopper",
			Name:      "quote_requests_total",
			Help:      "Quote and allocation requests by segment and outcome.",
		}, []string{"segment", "outcome"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rate_shopper",
			Name:      "candidate_evaluations_total",
			Help:      "Rate contract evaluations by segment and result.",
		}, []string{"segment", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rate_shopper",
			Name:      "quote_duration_seconds",
			Help:      "End to end quote computation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"segment"}),
	}
	reg.MustRegister(
		r.requests,
		r.candidates,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry to expose over HTTP.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRequest records one finished quote request.
func (r *Recorder) ObserveRequest(segment, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(segment, outcome).Inc()
	r.duration.WithLabelValues(segment).Observe(elapsed.Seconds())
}

// ObserveCandidates records how many candidates produced a quote, were skipped or were not serviceable.
func (r *Recorder) ObserveCandidates(segment string, quoted, skipped, unserviceable int) {
	if r == nil {
		return
	}
	r.candidates.WithLabelValues(segment, "quoted").Add(float64(quoted))
	r.candidates.WithLabelValues(segment, "skipped").Add(float64(skipped))
	r.candidates.WithLabelValues(segment, "unserviceable").Add(float64(unserviceable))
}

// Package metrics provides optional Prometheus instrumentation seams
// Decision logic never depends on these; they decorate collaborator calls
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics captures the portal's decision and upstream instruments
type Metrics interface {
	// IncDecision counts one gate decision by outcome and reject reason
	// reason is empty for serve and redirect outcomes
	IncDecision(outcome, reason string)

	// ObserveUpstream records one collaborator call by name and result
	ObserveUpstream(upstream, result string, seconds float64)

	// AddRollupRows counts rows folded into the usage store
	AddRollupRows(n float64)
}

// Noop implements Metrics without emitting anything
type Noop struct{}

func (Noop) IncDecision(string, string)              {}
func (Noop) ObserveUpstream(string, string, float64) {}
func (Noop) AddRollupRows(float64)                   {}

// Prom implements Metrics backed by Prometheus collectors
type Prom struct {
	decisions  *prometheus.CounterVec
	upstream   *prometheus.HistogramVec
	rollupRows prometheus.Counter
	once       sync.Once
}

// NewProm registers collectors on the default registerer
func NewProm(namespace string) *Prom {
	return NewPromInto(prometheus.DefaultRegisterer, namespace)
}

// NewPromInto registers collectors on reg; tests pass a private registry
func NewPromInto(reg prometheus.Registerer, namespace string) *Prom {
	p := &Prom{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_decisions_total",
			Help:      "Download gate decisions by outcome and reject reason",
		}, []string{"outcome", "reason"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Collaborator call latency by upstream and result",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream", "result"}),
		rollupRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollup_rows_total",
			Help:      "Rows folded into the usage store",
		}),
	}
	p.once.Do(func() {
		reg.MustRegister(p.decisions, p.upstream, p.rollupRows)
	})
	return p
}

// IncDecision implements Metrics
func (p *Prom) IncDecision(outcome, reason string) {
	p.decisions.WithLabelValues(outcome, reason).Inc()
}

// ObserveUpstream implements Metrics
func (p *Prom) ObserveUpstream(upstream, result string, seconds float64) {
	p.upstream.WithLabelValues(upstream, result).Observe(seconds)
}

// AddRollupRows implements Metrics
func (p *Prom) AddRollupRows(n float64) {
	if n > 0 {
		p.rollupRows.Add(n)
	}
}

// Handler returns the scrape endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

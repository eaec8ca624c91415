// Package metrics exposes rule engine, order and ticket measurements as
// Prometheus collectors on a dedicated registry.
package metrics

import (
	"context"
	"net/http"
	"time"

	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordermanager"

// Metrics owns the registry and every collector of the service.
// It implements rules.Observer.
type Metrics struct {
	registry *prometheus.Registry

	ruleEvaluations  *prometheus.CounterVec
	ruleDuration     *prometheus.HistogramVec
	pipelineDuration *prometheus.HistogramVec
	orderChanges     *prometheus.CounterVec
	ticketsByStatus  *prometheus.GaugeVec
	ticketAvgAmount  *prometheus.GaugeVec
}

// New creates the collectors and registers them together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ruleEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "evaluations_total",
			Help:      "Rule invocations by rule, kind and outcome.",
		}, []string{"rule", "kind", "outcome"}),
		ruleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of one rule invocation.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}, []string{"rule"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rules",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of one evaluator pipeline run.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05},
		}, []string{"pipeline"}),
		orderChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "changes_total",
			Help:      "Committed order changes by event and target state.",
		}, []string{"event", "state"}),
		ticketsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "support_tickets",
			Name:      "count",
			Help:      "Support tickets per status.",
		}, []string{"status"}),
		ticketAvgAmount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "support_tickets",
			Name:      "average_amount",
			Help:      "Average order amount of the support tickets per status.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ruleEvaluations,
		m.ruleDuration,
		m.pipelineDuration,
		m.orderChanges,
		m.ticketsByStatus,
		m.ticketAvgAmount,
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RuleEvaluated(ruleID string, kind rules.Kind, outcome rules.Outcome, elapsed time.Duration) {
	m.ruleEvaluations.WithLabelValues(ruleID, string(kind), string(outcome)).Inc()
	m.ruleDuration.WithLabelValues(ruleID).Observe(elapsed.Seconds())
}

func (m *Metrics) PipelineCompleted(pipeline rules.Pipeline, elapsed time.Duration) {
	m.pipelineDuration.WithLabelValues(string(pipeline)).Observe(elapsed.Seconds())
}

// SetTicketStats replaces the ticket gauges. Statuses missing from stats are
// reported as zero.
func (m *Metrics) SetTicketStats(stats []ports.TicketStatusStats) {
	for _, s := range ticket.Statuses() {
		m.ticketsByStatus.WithLabelValues(string(s)).Set(0)
		m.ticketAvgAmount.WithLabelValues(string(s)).Set(0)
	}
	for _, s := range stats {
		m.ticketsByStatus.WithLabelValues(string(s.Status)).Set(float64(s.Count))
		m.ticketAvgAmount.WithLabelValues(string(s.Status)).Set(s.AvgAmount)
	}
}

// CountingPublisher counts committed order changes and forwards them to next.
// next may be nil.
func (m *Metrics) CountingPublisher(next ports.EventPublisher) ports.EventPublisher {
	return &countingPublisher{metrics: m, next: next}
}

type countingPublisher struct {
	metrics *Metrics
	next    ports.EventPublisher
}

func (p *countingPublisher) Publish(ctx context.Context, changes ...order.Changed) error {
	for _, c := range changes {
		p.metrics.orderChanges.WithLabelValues(string(c.Event), string(c.To)).Inc()
	}
	if p.next == nil {
		return nil
	}
	return p.next.Publish(ctx, changes...)
}

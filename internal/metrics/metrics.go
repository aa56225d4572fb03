package metrics

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts store outcomes and snapshot persistence activity.
// A nil *StoreMetrics, or one built without a registerer, records nothing.
type StoreMetrics struct {
	outcomes *prometheus.CounterVec
	saves    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}

	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_outcomes_total",
		Help: "Store mutation outcomes by store and kind.",
	}, []string{"store", "kind"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_snapshot_saves_total",
		Help: "Snapshots written, by key.",
	}, []string{"key"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_persistence_failures_total",
		Help: "Contained persistence failures, by key and operation.",
	}, []string{"key", "op"})

	reg.MustRegister(outcomes, saves, failures)

	return &StoreMetrics{
		outcomes: outcomes,
		saves:    saves,
		failures: failures,
	}
}

func (m *StoreMetrics) IncOutcome(store string, kind domain.OutcomeKind) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(store), normalizeLabel(string(kind))).Inc()
}

func (m *StoreMetrics) IncSave(key string) {
	if m == nil || m.saves == nil {
		return
	}
	m.saves.WithLabelValues(normalizeLabel(key)).Inc()
}

func (m *StoreMetrics) IncFailure(key, op string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(key), normalizeLabel(op)).Inc()
}

// Notify lets the metrics take part in an outcome fan-out.
func (m *StoreMetrics) Notify(_ context.Context, o domain.Outcome) {
	if o.IsZero() {
		return
	}
	m.IncOutcome(o.Store, o.Kind)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

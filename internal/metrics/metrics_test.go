package metrics

import (
	"context"
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Notify(context.Background(), domain.Outcome{Kind: domain.OutcomeAdded, Store: domain.StoreCart, ItemID: 1})
	m.Notify(context.Background(), domain.Outcome{Kind: domain.OutcomeAdded, Store: domain.StoreCart, ItemID: 2})
	m.Notify(context.Background(), domain.Outcome{})
	m.IncSave("megamart_cart")
	m.IncFailure("megamart_cart", "load")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues("cart", "added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("megamart_cart")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("megamart_cart", "load")))
}

func TestNilSafe(t *testing.T) {
	var m *StoreMetrics
	assert.NotPanics(t, func() {
		m.IncOutcome("cart", domain.OutcomeAdded)
		m.IncSave("k")
		m.IncFailure("k", "save")
	})

	unregistered := New(nil)
	assert.NotPanics(t, func() {
		unregistered.Notify(context.Background(), domain.Outcome{Kind: domain.OutcomeRemoved})
	})
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "unknown", normalizeLabel(""))
	assert.Equal(t, "cart", normalizeLabel("cart"))
}

package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(backend string) config.Config {
	return config.Config{
		Log:     config.LogConfig{Level: "debug", Format: "json"},
		Storage: config.StorageConfig{Backend: backend, Namespace: "test_"},
		Pricing: config.PricingConfig{Currency: "BDT", DiscountRate: "0.2", ShippingFee: "5", DeliveryFee: "15"},
		Cart:    config.CartConfig{MergePolicy: "refresh"},
	}
}

func openSession(t *testing.T, cfg config.Config) *Session {
	t.Helper()

	s, err := NewSession(context.Background(), cfg, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return s
}

func TestSession_Memory(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, err := NewSession(ctx, testConfig(config.BackendMemory), logger.Nop(), reg)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close(ctx)) }()

	out, err := s.AddToCart(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAdded, out.Kind)

	_, err = s.AddToCart(ctx, 20)
	require.NoError(t, err)

	// 2 x 7999 = 15998, discount 3200, delivery 15
	summary := s.CartSummary()
	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, domain.NewMoney(15998, s.Currency).Equal(summary.Subtotal))
	assert.True(t, domain.NewMoney(3200, s.Currency).Equal(summary.Discount))
	assert.True(t, domain.NewMoney(12813, s.Currency).Equal(summary.Total))

	out, err = s.ToggleWishlist(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAdded, out.Kind)
	assert.True(t, s.Wishlist.Contains(5))

	kinds := make([]domain.OutcomeKind, 0)
	for _, o := range s.Notifications.Drain() {
		kinds = append(kinds, o.Kind)
	}
	assert.Equal(t, []domain.OutcomeKind{domain.OutcomeAdded, domain.OutcomeQuantityUpdated, domain.OutcomeAdded}, kinds)

	count, err := testutil.GatherAndCount(reg, "storefront_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSession_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, testConfig(config.BackendMemory))
	defer func() { require.NoError(t, s.Close(ctx)) }()

	_, err := s.AddToCart(ctx, 999)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = s.ToggleWishlist(ctx, 999)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)

	assert.Empty(t, s.Notifications.Outcomes())
}

func TestSession_FileSurvivesRestart(t *testing.T) {
	for _, async := range []bool{false, true} {
		t.Run(map[bool]string{false: "sync", true: "async"}[async], func(t *testing.T) {
			ctx := context.Background()

			cfg := testConfig(config.BackendFile)
			cfg.Storage.Dir = t.TempDir()
			cfg.Storage.Async = async

			first := openSession(t, cfg)
			_, err := first.AddToCart(ctx, 1)
			require.NoError(t, err)
			_, err = first.AddToCart(ctx, 2)
			require.NoError(t, err)
			first.Cart.SetQuantity(ctx, 2, 4)
			_, err = first.ToggleWishlist(ctx, 3)
			require.NoError(t, err)
			require.NoError(t, first.Close(ctx))

			second := openSession(t, cfg)
			defer func() { require.NoError(t, second.Close(ctx)) }()

			assert.Equal(t, 5, second.Cart.Count())
			assert.Equal(t, 4, second.Cart.Quantity(2))
			assert.True(t, second.Wishlist.Contains(3))
		})
	}
}

func TestSession_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := testConfig(config.BackendRedis)
	cfg.Redis.Addr = mr.Addr()

	s := openSession(t, cfg)
	_, err := s.AddToCart(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	assert.True(t, mr.Exists("test_cart"))

	reopened := openSession(t, cfg)
	defer func() { require.NoError(t, reopened.Close(ctx)) }()
	assert.Equal(t, 1, reopened.Cart.Quantity(7))
}

func TestSession_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(config.BackendRedis)
	cfg.Redis.Addr = addr

	_, err := NewSession(context.Background(), cfg, nil, prometheus.NewRegistry())
	require.Error(t, err)
}

func TestSession_InvalidConfig(t *testing.T) {
	cfg := testConfig("cassandra")

	_, err := NewSession(context.Background(), cfg, nil, nil)
	require.Error(t, err)
}

func TestSession_Checkout(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, testConfig(config.BackendMemory))
	defer func() { require.NoError(t, s.Close(ctx)) }()

	_, err := s.AddToCart(ctx, 20)
	require.NoError(t, err)

	order, err := s.Checkout.PlaceOrder(ctx, checkout.ShippingDetails{
		FullName:     "Rahim Uddin",
		Email:        "rahim@example.com",
		Phone:        "01712345678",
		Country:      "Bangladesh",
		City:         "Dhaka",
		State:        "Dhaka Division",
		ZipCode:      "1207",
		AgreeToTerms: true,
	}, "")
	require.NoError(t, err)

	// 7999 - 1600 + 5
	assert.True(t, domain.NewMoney(6404, s.Currency).Equal(order.Summary.Total))
	assert.Zero(t, s.Cart.Count())
}

func TestSession_CloseTwice(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendFile)
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.Async = true

	s := openSession(t, cfg)
	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))
}

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/notify"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/currency"
)

// Session wires one shopper's stores to the configured backend.
type Session struct {
	Currency      currency.Unit
	CartPolicy    pricing.Policy
	Catalog       *catalog.Catalog
	Cart          *store.Cart
	Wishlist      *store.Wishlist
	Checkout      *checkout.Service
	Notifications *notify.Recorder
	Metrics       *metrics.StoreMetrics

	log     *logger.Logger
	closers []func(ctx context.Context) error
}

func NewSession(ctx context.Context, cfg config.Config, log *logger.Logger, reg prometheus.Registerer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	unit, err := cfg.Pricing.Unit()
	if err != nil {
		return nil, fmt.Errorf("cfg.Pricing.Unit: %w", err)
	}

	merge, _ := store.ParseMergePolicy(cfg.Cart.MergePolicy)

	s := &Session{
		Currency:      unit,
		CartPolicy:    pricing.Policy{DiscountRate: cfg.Pricing.Discount(), ShippingFee: cfg.Pricing.Delivery()},
		Catalog:       catalog.Default(),
		Notifications: &notify.Recorder{},
		Metrics:       metrics.New(reg),
		log:           log,
	}

	kv, err := s.openBackend(ctx, cfg)
	if err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("s.openBackend: %w", err)
	}

	snapOpts := repository.SnapshotOptions{
		Namespace: cfg.Storage.Namespace,
		Currency:  unit,
		Logger:    log,
		Metrics:   s.Metrics,
	}
	cartSnapshots := repository.NewCartSnapshots(kv, snapOpts)
	wishlistSnapshots := repository.NewWishlistSnapshots(kv, snapOpts)

	if cfg.Storage.Async {
		asyncCart := repository.NewAsyncSnapshots(cartSnapshots)
		asyncWishlist := repository.NewAsyncSnapshots(wishlistSnapshots)
		// flush writers before backend clients close
		s.closers = append([]func(context.Context) error{asyncCart.Close, asyncWishlist.Close}, s.closers...)
		cartSnapshots, wishlistSnapshots = asyncCart, asyncWishlist
	}

	notifier := notify.Fanout(notify.NewLogNotifier(log), s.Metrics, s.Notifications)

	s.Cart = store.NewCart(ctx, cartSnapshots,
		store.WithNotifier(notifier),
		store.WithCurrency(unit),
		store.WithMergePolicy(merge),
	)
	s.Wishlist = store.NewWishlist(ctx, wishlistSnapshots, store.WithNotifier(notifier))

	checkoutPolicy := pricing.Policy{DiscountRate: cfg.Pricing.Discount(), ShippingFee: cfg.Pricing.Shipping()}
	s.Checkout = checkout.NewService(s.Cart, unit, checkoutPolicy, log)

	ctx = log.WithFields(ctx, map[string]any{
		"backend":   cfg.Storage.Backend,
		"namespace": cfg.Storage.Namespace,
		"async":     cfg.Storage.Async,
	})
	log.Debug(ctx, "session opened")

	return s, nil
}

func (s *Session) openBackend(ctx context.Context, cfg config.Config) (port.KeyValueStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return repository.NewMemoryStore(), nil

	case config.BackendFile:
		kv, err := repository.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("repository.NewFileStore: %w", err)
		}
		return kv, nil

	case config.BackendRedis:
		client, err := repository.OpenRedis(ctx, repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("repository.OpenRedis: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		return repository.NewRedisStore(client), nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("pool.Ping: %w", err)
		}
		if err := migrations.Up(cfg.Postgres.URL); err != nil {
			return nil, fmt.Errorf("migrations.Up: %w", err)
		}
		return repository.NewPostgresStore(pool), nil
	}

	return nil, fmt.Errorf("storage backend[%s] is not supported", cfg.Storage.Backend)
}

// AddToCart looks the product up in the catalog and adds one unit of it.
func (s *Session) AddToCart(ctx context.Context, id int64) (domain.Outcome, error) {
	p, ok := s.Catalog.Find(id)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("product[%d]: %w", id, catalog.ErrProductNotFound)
	}
	return s.Cart.AddItem(ctx, p.Item()), nil
}

// ToggleWishlist looks the product up in the catalog and flips its wishlist membership.
func (s *Session) ToggleWishlist(ctx context.Context, id int64) (domain.Outcome, error) {
	p, ok := s.Catalog.Find(id)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("product[%d]: %w", id, catalog.ErrProductNotFound)
	}
	return s.Wishlist.Toggle(ctx, p.Item()), nil
}

func (s *Session) CartSummary() pricing.Summary {
	return s.Cart.Summary(s.CartPolicy)
}

// Close flushes pending snapshots and releases backend clients. Safe to call twice.
func (s *Session) Close(ctx context.Context) error {
	closers := s.closers
	s.closers = nil

	var errs []error
	for _, c := range closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

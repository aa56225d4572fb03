package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

const (
	DefaultNamespace = "megamart_"

	cartSuffix     = "cart"
	wishlistSuffix = "wishlist"
)

func CartKey(namespace string) string {
	return namespace + cartSuffix
}

func WishlistKey(namespace string) string {
	return namespace + wishlistSuffix
}

type SnapshotOptions struct {
	Namespace string
	Currency  currency.Unit
	Logger    *logger.Logger
	Metrics   *metrics.StoreMetrics
}

type snapshotRepository[T any, R any] struct {
	kv      port.KeyValueStore
	key     string
	unit    currency.Unit
	log     *logger.Logger
	metrics *metrics.StoreMetrics

	toRecord   func(T) R
	fromRecord func(R, currency.Unit) (T, error)
	idOf       func(T) int64
}

func NewCartSnapshots(kv port.KeyValueStore, opts SnapshotOptions) port.CartSnapshots {
	return &snapshotRepository[domain.CartLine, cartLineRecord]{
		kv:         kv,
		key:        CartKey(namespaceOrDefault(opts.Namespace)),
		unit:       opts.Currency,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		toRecord:   mapCartLineToRecord,
		fromRecord: mapRecordToCartLine,
		idOf:       func(l domain.CartLine) int64 { return l.ID },
	}
}

func NewWishlistSnapshots(kv port.KeyValueStore, opts SnapshotOptions) port.WishlistSnapshots {
	return &snapshotRepository[domain.WishlistEntry, wishlistEntryRecord]{
		kv:         kv,
		key:        WishlistKey(namespaceOrDefault(opts.Namespace)),
		unit:       opts.Currency,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		toRecord:   mapWishlistEntryToRecord,
		fromRecord: mapRecordToWishlistEntry,
		idOf:       func(e domain.WishlistEntry) int64 { return e.ID },
	}
}

// Load never fails. A missing key, an unreadable backend or a corrupt value all yield an empty collection.
// Records that break the collection invariants are dropped: invalid lines, and repeated ids after the first.
func (r *snapshotRepository[T, R]) Load(ctx context.Context) []T {
	ctx = r.log.WithField(ctx, "key", r.key)

	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, port.ErrKeyNotFound) {
		return []T{}
	}
	if err != nil {
		r.log.Warn(ctx, "snapshot read failed, starting empty", err)
		r.metrics.IncFailure(r.key, "load")
		return []T{}
	}

	raws, err := decodeSnapshot(data)
	if err != nil {
		r.log.Warn(ctx, "snapshot decode failed, starting empty", err)
		r.metrics.IncFailure(r.key, "decode")
		return []T{}
	}

	items := make([]T, 0, len(raws))
	seen := make(map[int64]struct{}, len(raws))
	for _, raw := range raws {
		var rec R
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.log.Warn(ctx, "snapshot record dropped", fmt.Errorf("json.Unmarshal: %w", err))
			continue
		}

		item, err := r.fromRecord(rec, r.unit)
		if err != nil {
			r.log.Warn(ctx, "snapshot record dropped", err)
			continue
		}

		id := r.idOf(item)
		if _, dup := seen[id]; dup {
			r.log.Warn(ctx, "snapshot record dropped", fmt.Errorf("duplicate id %d", id))
			continue
		}
		seen[id] = struct{}{}

		items = append(items, item)
	}

	return items
}

// Save overwrites the whole snapshot. Failures are logged and counted, never returned.
func (r *snapshotRepository[T, R]) Save(ctx context.Context, items []T) {
	ctx = r.log.WithField(ctx, "key", r.key)

	records := make([]R, 0, len(items))
	for _, item := range items {
		records = append(records, r.toRecord(item))
	}

	data, err := json.Marshal(envelope[R]{Version: schemaVersion, Items: records})
	if err != nil {
		r.log.Error(ctx, "snapshot encode failed", err)
		r.metrics.IncFailure(r.key, "encode")
		return
	}

	if err := r.kv.Set(ctx, r.key, data); err != nil {
		r.log.Error(ctx, "snapshot write failed", err)
		r.metrics.IncFailure(r.key, "save")
		return
	}

	r.metrics.IncSave(r.key)
}

// decodeSnapshot splits both the versioned envelope and the legacy bare array
// into raw records, so one bad record never takes the rest down with it.
// A missing version is read as the current schema.
func decodeSnapshot(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("json.Unmarshal legacy: %w", err)
		}
		return raws, nil
	case '{':
		var env envelope[json.RawMessage]
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}
		if env.Version > schemaVersion {
			return nil, fmt.Errorf("snapshot version %d is newer than %d", env.Version, schemaVersion)
		}
		return env.Items, nil
	default:
		return nil, fmt.Errorf("unexpected snapshot prefix %q", data[0])
	}
}

func namespaceOrDefault(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

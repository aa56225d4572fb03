package store_test

import (
	"context"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"golang.org/x/text/currency"
)

var bdt = currency.MustParseISO("BDT")

// countingSnapshots wraps real snapshots over a memory store and counts saves.
type countingSnapshots[T any] struct {
	port.Snapshots[T]

	mu    sync.Mutex
	saves int
}

func (c *countingSnapshots[T]) Save(ctx context.Context, items []T) {
	c.mu.Lock()
	c.saves++
	c.mu.Unlock()

	c.Snapshots.Save(ctx, items)
}

func (c *countingSnapshots[T]) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func newCartSnapshots(kv port.KeyValueStore) *countingSnapshots[domain.CartLine] {
	return &countingSnapshots[domain.CartLine]{
		Snapshots: repository.NewCartSnapshots(kv, repository.SnapshotOptions{Currency: bdt}),
	}
}

func newWishlistSnapshots(kv port.KeyValueStore) *countingSnapshots[domain.WishlistEntry] {
	return &countingSnapshots[domain.WishlistEntry]{
		Snapshots: repository.NewWishlistSnapshots(kv, repository.SnapshotOptions{Currency: bdt}),
	}
}

func item(id int64, price int64) domain.Item {
	return domain.Item{
		ID:            id,
		Name:          gofakeit.ProductName(),
		Price:         domain.NewMoney(price, bdt),
		OriginalPrice: domain.NewMoney(price*2, bdt),
		Image:         gofakeit.URL(),
	}
}

package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Snapshots round-trips a whole collection under one namespaced key.
// Load and Save contain their failures: Load falls back to an empty collection
// and Save only logs, so neither returns an error.
type Snapshots[T any] interface {
	Load(ctx context.Context) []T
	Save(ctx context.Context, items []T)
}

type CartSnapshots = Snapshots[domain.CartLine]

type WishlistSnapshots = Snapshots[domain.WishlistEntry]

type Notifier interface {
	Notify(ctx context.Context, outcome domain.Outcome)
}

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Wishlist owns saved-for-later entries, unique by ID, in insertion order.
// Unlike the cart, adding an entry that is already present is refused.
type Wishlist struct {
	mu      sync.Mutex
	entries []domain.WishlistEntry

	snapshots port.WishlistSnapshots
	opts      options
}

func NewWishlist(ctx context.Context, snapshots port.WishlistSnapshots, opts ...Option) *Wishlist {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	entries := snapshots.Load(ctx)
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}

	return &Wishlist{
		entries:   entries,
		snapshots: snapshots,
		opts:      o,
	}
}

// AddItem appends the entry, or reports a duplicate and leaves the existing entry untouched.
// Both paths persist.
func (w *Wishlist) AddItem(ctx context.Context, item domain.Item) domain.Outcome {
	w.mu.Lock()
	out := w.add(item)
	w.persistAndUnlock(ctx)

	w.notify(ctx, out)
	return out
}

func (w *Wishlist) RemoveItem(ctx context.Context, id int64) domain.Outcome {
	w.mu.Lock()
	out := w.remove(id)
	w.persistAndUnlock(ctx)

	w.notify(ctx, out)
	return out
}

// Toggle removes the entry when present and adds it otherwise, as one mutation.
func (w *Wishlist) Toggle(ctx context.Context, item domain.Item) domain.Outcome {
	w.mu.Lock()

	var out domain.Outcome
	if w.indexOf(item.ID) >= 0 {
		out = w.remove(item.ID)
	} else {
		out = w.add(item)
	}

	w.persistAndUnlock(ctx)
	w.notify(ctx, out)
	return out
}

func (w *Wishlist) Clear(ctx context.Context) domain.Outcome {
	w.mu.Lock()

	var out domain.Outcome
	if len(w.entries) > 0 {
		out = w.outcome(domain.OutcomeCleared, 0, "")
	}
	w.entries = []domain.WishlistEntry{}

	w.persistAndUnlock(ctx)
	w.notify(ctx, out)
	return out
}

func (w *Wishlist) Contains(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.indexOf(id) >= 0
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.entries)
}

func (w *Wishlist) Entries() []domain.WishlistEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	return slices.Clone(w.entries)
}

func (w *Wishlist) add(item domain.Item) domain.Outcome {
	if w.indexOf(item.ID) >= 0 {
		return w.outcome(domain.OutcomeDuplicate, item.ID, item.Name)
	}
	w.entries = append(w.entries, domain.NewWishlistEntry(item))
	return w.outcome(domain.OutcomeAdded, item.ID, item.Name)
}

func (w *Wishlist) remove(id int64) domain.Outcome {
	i := w.indexOf(id)
	if i < 0 {
		return domain.Outcome{}
	}

	entry := w.entries[i]
	w.entries = slices.Delete(w.entries, i, i+1)
	return w.outcome(domain.OutcomeRemoved, entry.ID, entry.Name)
}

func (w *Wishlist) indexOf(id int64) int {
	return slices.IndexFunc(w.entries, func(e domain.WishlistEntry) bool { return e.ID == id })
}

func (w *Wishlist) outcome(kind domain.OutcomeKind, id int64, name string) domain.Outcome {
	return domain.Outcome{Kind: kind, Store: domain.StoreWishlist, ItemID: id, ItemName: name}
}

func (w *Wishlist) persistAndUnlock(ctx context.Context) {
	defer w.mu.Unlock()
	w.snapshots.Save(ctx, slices.Clone(w.entries))
}

func (w *Wishlist) notify(ctx context.Context, out domain.Outcome) {
	if !out.IsZero() {
		w.opts.notifier.Notify(ctx, out)
	}
}

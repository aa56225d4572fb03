package store

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
)

// Cart owns the shopper's cart lines. Lines are unique by ID, keep insertion
// order, and always have a quantity of at least one.
// Every mutation saves the full collection exactly once, after the in-memory
// change, while still holding the lock so saves follow mutation order.
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine

	snapshots port.CartSnapshots
	opts      options
}

// NewCart hydrates the cart from its snapshot.
func NewCart(ctx context.Context, snapshots port.CartSnapshots, opts ...Option) *Cart {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lines := snapshots.Load(ctx)
	if lines == nil {
		lines = []domain.CartLine{}
	}

	return &Cart{
		lines:     lines,
		snapshots: snapshots,
		opts:      o,
	}
}

// AddItem adds one unit. An existing line gets its quantity incremented by one,
// otherwise a new line with quantity 1 is appended.
func (c *Cart) AddItem(ctx context.Context, item domain.Item) domain.Outcome {
	c.mu.Lock()

	var out domain.Outcome
	if i := c.indexOf(item.ID); i >= 0 {
		line := c.lines[i]
		if c.opts.merge == MergeRefresh {
			line = domain.NewCartLine(item, line.Quantity)
		}
		line.Quantity++
		c.lines[i] = line
		out = c.outcome(domain.OutcomeQuantityUpdated, line.ID, line.Name)
	} else {
		c.lines = append(c.lines, domain.NewCartLine(item, 1))
		out = c.outcome(domain.OutcomeAdded, item.ID, item.Name)
	}

	c.persistAndUnlock(ctx)
	c.notify(ctx, out)
	return out
}

// RemoveItem removes the line if present. An absent id still persists but yields no outcome.
func (c *Cart) RemoveItem(ctx context.Context, id int64) domain.Outcome {
	c.mu.Lock()
	out := c.remove(id)
	c.persistAndUnlock(ctx)

	c.notify(ctx, out)
	return out
}

// SetQuantity sets an absolute quantity. A non-positive quantity removes the line;
// an unknown id is a no-op and never creates a line.
func (c *Cart) SetQuantity(ctx context.Context, id int64, quantity int) domain.Outcome {
	if quantity <= 0 {
		return c.RemoveItem(ctx, id)
	}

	c.mu.Lock()

	var out domain.Outcome
	if i := c.indexOf(id); i >= 0 && c.lines[i].Quantity != quantity {
		c.lines[i].Quantity = quantity
		out = c.outcome(domain.OutcomeQuantityUpdated, id, c.lines[i].Name)
	}

	c.persistAndUnlock(ctx)
	c.notify(ctx, out)
	return out
}

func (c *Cart) Clear(ctx context.Context) domain.Outcome {
	c.mu.Lock()

	var out domain.Outcome
	if len(c.lines) > 0 {
		out = c.outcome(domain.OutcomeCleared, 0, "")
	}
	c.lines = []domain.CartLine{}

	c.persistAndUnlock(ctx)
	c.notify(ctx, out)
	return out
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.lines)
}

func (c *Cart) Quantity(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return pricing.Count(c.lines)
}

// Total is the exact sum of unit price times quantity.
func (c *Cart) Total() domain.Money {
	c.mu.Lock()
	defer c.mu.Unlock()

	return pricing.Subtotal(c.lines, c.opts.currency)
}

func (c *Cart) Summary(policy pricing.Policy) pricing.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return pricing.Summarize(c.lines, c.opts.currency, policy)
}

func (c *Cart) remove(id int64) domain.Outcome {
	i := c.indexOf(id)
	if i < 0 {
		return domain.Outcome{}
	}

	line := c.lines[i]
	c.lines = slices.Delete(c.lines, i, i+1)
	return c.outcome(domain.OutcomeRemoved, line.ID, line.Name)
}

func (c *Cart) indexOf(id int64) int {
	return slices.IndexFunc(c.lines, func(l domain.CartLine) bool { return l.ID == id })
}

func (c *Cart) outcome(kind domain.OutcomeKind, id int64, name string) domain.Outcome {
	return domain.Outcome{Kind: kind, Store: domain.StoreCart, ItemID: id, ItemName: name}
}

func (c *Cart) persistAndUnlock(ctx context.Context) {
	defer c.mu.Unlock()
	c.snapshots.Save(ctx, slices.Clone(c.lines))
}

func (c *Cart) notify(ctx context.Context, out domain.Outcome) {
	if !out.IsZero() {
		c.opts.notifier.Notify(ctx, out)
	}
}

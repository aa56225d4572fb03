package repository

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront/internal/port"
)

// AsyncSnapshots moves Save off the caller's path. A single writer goroutine
// always persists the latest snapshot handed to it, so writes never reorder and
// intermediate snapshots may be skipped (last write wins).
type AsyncSnapshots[T any] struct {
	inner port.Snapshots[T]

	mu         sync.Mutex
	pending    []T
	pendingCtx context.Context
	hasPending bool
	closed     bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewAsyncSnapshots[T any](inner port.Snapshots[T]) *AsyncSnapshots[T] {
	a := &AsyncSnapshots[T]{
		inner: inner,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncSnapshots[T]) Load(ctx context.Context) []T {
	return a.inner.Load(ctx)
}

// Save queues a copy of items. After Close it writes synchronously.
func (a *AsyncSnapshots[T]) Save(ctx context.Context, items []T) {
	snapshot := append([]T(nil), items...)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		a.inner.Save(ctx, snapshot)
		return
	}
	a.pending = snapshot
	a.pendingCtx = context.WithoutCancel(ctx)
	a.hasPending = true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Close flushes the pending snapshot and stops the writer.
// It returns ctx.Err() if ctx ends first; the writer still finishes in the background.
func (a *AsyncSnapshots[T]) Close(ctx context.Context) error {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()
		close(a.stop)
	})

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *AsyncSnapshots[T]) run() {
	defer close(a.done)

	for {
		select {
		case <-a.wake:
			a.flush()
		case <-a.stop:
			a.flush()
			return
		}
	}
}

func (a *AsyncSnapshots[T]) flush() {
	a.mu.Lock()
	if !a.hasPending {
		a.mu.Unlock()
		return
	}
	items, ctx := a.pending, a.pendingCtx
	a.pending, a.pendingCtx, a.hasPending = nil, nil, false
	a.mu.Unlock()

	a.inner.Save(ctx, items)
}

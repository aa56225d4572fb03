package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
)

// Message renders an outcome the way the storefront toasts read.
func Message(o domain.Outcome) string {
	switch o.Store {
	case domain.StoreCart:
		switch o.Kind {
		case domain.OutcomeAdded:
			return fmt.Sprintf("%s added to cart!", o.ItemName)
		case domain.OutcomeQuantityUpdated:
			return fmt.Sprintf("%s quantity updated in cart!", o.ItemName)
		case domain.OutcomeRemoved:
			return fmt.Sprintf("%s removed from cart", o.ItemName)
		case domain.OutcomeCleared:
			return "Cart cleared"
		}
	case domain.StoreWishlist:
		switch o.Kind {
		case domain.OutcomeAdded:
			return fmt.Sprintf("%s added to wishlist!", o.ItemName)
		case domain.OutcomeDuplicate:
			return fmt.Sprintf("%s is already in your wishlist!", o.ItemName)
		case domain.OutcomeRemoved:
			return fmt.Sprintf("%s removed from wishlist", o.ItemName)
		case domain.OutcomeCleared:
			return "Wishlist cleared"
		}
	}
	return ""
}

// Severity tells the presentation layer how to style the message.
func Severity(o domain.Outcome) string {
	switch o.Kind {
	case domain.OutcomeAdded, domain.OutcomeQuantityUpdated:
		return "success"
	case domain.OutcomeDuplicate:
		return "error"
	default:
		return "info"
	}
}

// ToastID is stable per store, item and action so a newer toast replaces an older one.
func ToastID(o domain.Outcome) string {
	if o.Kind == domain.OutcomeRemoved {
		return fmt.Sprintf("%s-remove-%d", o.Store, o.ItemID)
	}
	return fmt.Sprintf("%s-%d", o.Store, o.ItemID)
}

type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, o domain.Outcome) {
	ctx = n.log.WithFields(ctx, map[string]any{
		"store":   o.Store,
		"outcome": string(o.Kind),
		"item_id": o.ItemID,
	})
	n.log.Debug(ctx, Message(o))
}

// Recorder keeps every outcome it sees. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	outcomes []domain.Outcome
}

func (r *Recorder) Notify(_ context.Context, o domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, o)
}

func (r *Recorder) Outcomes() []domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Outcome(nil), r.outcomes...)
}

// Drain returns the recorded outcomes and forgets them.
func (r *Recorder) Drain() []domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.outcomes
	r.outcomes = nil
	return out
}

type fanout []port.Notifier

// Fanout delivers each outcome to every non-nil notifier, in order.
func Fanout(notifiers ...port.Notifier) port.Notifier {
	var f fanout
	for _, n := range notifiers {
		if n != nil {
			f = append(f, n)
		}
	}
	return f
}

func (f fanout) Notify(ctx context.Context, o domain.Outcome) {
	for _, n := range f {
		n.Notify(ctx, o)
	}
}

package store

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

// MergePolicy decides what happens to a line's details when an item already in the cart is added again.
type MergePolicy int

const (
	// MergeRefresh takes name, prices and image from the latest add.
	MergeRefresh MergePolicy = iota
	// MergeKeep keeps the details captured by the first add.
	MergeKeep
)

func ParseMergePolicy(s string) (MergePolicy, bool) {
	switch s {
	case "", "refresh":
		return MergeRefresh, true
	case "keep":
		return MergeKeep, true
	default:
		return MergeRefresh, false
	}
}

type Option func(*options)

type options struct {
	notifier port.Notifier
	currency currency.Unit
	merge    MergePolicy
}

func defaultOptions() options {
	return options{
		notifier: nopNotifier{},
		currency: currency.MustParseISO("BDT"),
		merge:    MergeRefresh,
	}
}

func WithNotifier(n port.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithCurrency sets the currency totals are expressed in.
func WithCurrency(unit currency.Unit) Option {
	return func(o *options) {
		o.currency = unit
	}
}

func WithMergePolicy(p MergePolicy) Option {
	return func(o *options) {
		o.merge = p
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Outcome) {}

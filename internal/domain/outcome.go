package domain

type OutcomeKind string

const (
	OutcomeNone            OutcomeKind = ""
	OutcomeAdded           OutcomeKind = "added"
	OutcomeQuantityUpdated OutcomeKind = "quantity_updated"
	OutcomeRemoved         OutcomeKind = "removed"
	OutcomeDuplicate       OutcomeKind = "duplicate"
	OutcomeCleared         OutcomeKind = "cleared"
)

const (
	StoreCart     = "cart"
	StoreWishlist = "wishlist"
)

// Outcome describes what a store mutation did. The zero value means nothing happened.
type Outcome struct {
	Kind     OutcomeKind
	Store    string
	ItemID   int64
	ItemName string
}

func (o Outcome) IsZero() bool {
	return o.Kind == OutcomeNone
}

package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64, unit currency.Unit) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: unit}
}

func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Mul returns the amount multiplied by a unit count, e.g. unit price times quantity.
func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

// Add keeps the receiver's currency. Callers are expected to sum amounts of one currency only.
func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount) && m.Currency == o.Currency
}

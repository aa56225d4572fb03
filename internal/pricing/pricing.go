package pricing

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Policy holds the order-level adjustments applied on top of the cart subtotal.
type Policy struct {
	DiscountRate decimal.Decimal
	ShippingFee  decimal.Decimal
}

type Summary struct {
	ItemCount int
	Subtotal  domain.Money
	Discount  domain.Money
	Shipping  domain.Money
	Total     domain.Money
}

func LineTotal(line domain.CartLine) domain.Money {
	return line.Price.Mul(line.Quantity)
}

func Subtotal(lines []domain.CartLine, unit currency.Unit) domain.Money {
	total := domain.Zero(unit)
	for _, line := range lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

func Count(lines []domain.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Summarize applies the policy to the lines. An empty cart has no discount and no shipping.
// The discount is rounded to whole currency units.
func Summarize(lines []domain.CartLine, unit currency.Unit, policy Policy) Summary {
	subtotal := Subtotal(lines, unit)

	s := Summary{
		ItemCount: Count(lines),
		Subtotal:  subtotal,
		Discount:  domain.Zero(unit),
		Shipping:  domain.Zero(unit),
	}

	if len(lines) > 0 {
		s.Discount = domain.Money{Amount: subtotal.Amount.Mul(policy.DiscountRate).Round(0), Currency: unit}
		s.Shipping = domain.Money{Amount: policy.ShippingFee, Currency: unit}
	}

	s.Total = subtotal.Sub(s.Discount).Add(s.Shipping)
	return s
}

// DiscountPercent is the rounded percentage saved against the original price.
func DiscountPercent(price, original domain.Money) int {
	if original.Amount.LessThanOrEqual(decimal.Zero) || !original.Amount.GreaterThan(price.Amount) {
		return 0
	}

	saved := original.Amount.Sub(price.Amount).Div(original.Amount).Mul(decimal.NewFromInt(100))
	return int(saved.Round(0).IntPart())
}

// Savings is the difference between the original and the current price, never negative.
func Savings(price, original domain.Money) domain.Money {
	if !original.Amount.GreaterThan(price.Amount) {
		return domain.Zero(price.Currency)
	}
	return original.Sub(price)
}

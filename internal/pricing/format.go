package pricing

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice reads display strings such as "BDT 32,999" or "1499.50".
// A missing currency code falls back to the given unit.
func ParsePrice(s string, fallback currency.Unit) (domain.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Money{}, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}

	unit := fallback
	if n := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }); n != 0 {
		if n < 0 {
			n = len(s)
		}
		code := s[:n]
		parsed, err := currency.ParseISO(code)
		if err != nil {
			return domain.Money{}, fmt.Errorf("%w: currency[%s]: %v", ErrInvalidPrice, code, err)
		}
		unit = parsed
		s = s[n:]
	}

	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: amount[%s]: %v", ErrInvalidPrice, s, err)
	}

	return domain.Money{Amount: amount, Currency: unit}, nil
}

// Format renders money for display, e.g. "BDT 32,999.00".
func Format(m domain.Money) string {
	return FormatIn(language.English, m)
}

// FormatIn renders the exact amount, rounded to the currency's standard digits,
// with the grouping and decimal separator of tag.
func FormatIn(tag language.Tag, m domain.Money) string {
	scale, _ := currency.Standard.Rounding(m.Currency)
	p := message.NewPrinter(tag)

	amount := m.Amount.Round(int32(scale))
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := amount.Truncate(0)
	text := formatWhole(p, whole)
	if scale > 0 {
		frac := amount.Sub(whole).Shift(int32(scale)).IntPart()
		text += decimalSeparator(p) + p.Sprint(number.Decimal(frac, number.MinIntegerDigits(scale), number.NoSeparator()))
	}

	return fmt.Sprintf("%s %s%s", m.Currency, sign, text)
}

// formatWhole groups the integer part. Values past int64 are printed ungrouped.
func formatWhole(p *message.Printer, whole decimal.Decimal) string {
	if !whole.BigInt().IsInt64() {
		return whole.String()
	}
	return p.Sprint(number.Decimal(whole.IntPart()))
}

func decimalSeparator(p *message.Printer) string {
	return strings.TrimFunc(p.Sprint(number.Decimal(1.5, number.Scale(1))), unicode.IsDigit)
}

package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const schemaVersion = 1

type envelope[R any] struct {
	Version int `json:"version"`
	Items   []R `json:"items"`
}

// priceRecord accepts three encodings: {"amount":"1","currency":"BDT"},
// a display string like "BDT 32,999", or a bare number.
// An empty Currency means the configured default applies.
type priceRecord struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

func (p *priceRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		type plain priceRecord
		var v plain
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = priceRecord(v)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m, err := pricing.ParsePrice(s, currency.XXX)
		if err != nil {
			return err
		}
		p.Amount = m.Amount
		if m.Currency != currency.XXX {
			p.Currency = m.Currency.String()
		}
		return nil
	default:
		amount, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("decimal.NewFromString: %w", err)
		}
		p.Amount = amount
		return nil
	}
}

func priceToRecord(m domain.Money) priceRecord {
	return priceRecord{Amount: m.Amount, Currency: m.Currency.String()}
}

func priceFromRecord(p priceRecord, fallback currency.Unit) (domain.Money, error) {
	if p.Currency == "" {
		return domain.Money{Amount: p.Amount, Currency: fallback}, nil
	}

	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", p.Currency, err)
	}

	return domain.Money{Amount: p.Amount, Currency: unit}, nil
}

type cartLineRecord struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Price         priceRecord  `json:"price"`
	OriginalPrice *priceRecord `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
	Quantity      int          `json:"quantity"`
}

type wishlistEntryRecord struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Price         priceRecord  `json:"price"`
	OriginalPrice *priceRecord `json:"originalPrice,omitempty"`
	Image         string       `json:"image"`
}

func originalToRecord(m domain.Money) *priceRecord {
	if m.IsZero() {
		return nil
	}
	r := priceToRecord(m)
	return &r
}

func originalFromRecord(p *priceRecord, fallback currency.Unit) (domain.Money, error) {
	if p == nil {
		return domain.Zero(fallback), nil
	}
	return priceFromRecord(*p, fallback)
}

func mapCartLineToRecord(line domain.CartLine) cartLineRecord {
	return cartLineRecord{
		ID:            line.ID,
		Name:          line.Name,
		Price:         priceToRecord(line.Price),
		OriginalPrice: originalToRecord(line.OriginalPrice),
		Image:         line.Image,
		Quantity:      line.Quantity,
	}
}

func mapRecordToCartLine(r cartLineRecord, fallback currency.Unit) (domain.CartLine, error) {
	if r.Quantity < 1 {
		return domain.CartLine{}, fmt.Errorf("line[%d] quantity %d is not positive", r.ID, r.Quantity)
	}

	price, err := priceFromRecord(r.Price, fallback)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("priceFromRecord: %w", err)
	}

	original, err := originalFromRecord(r.OriginalPrice, fallback)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("originalFromRecord: %w", err)
	}

	return domain.CartLine{
		ID:            r.ID,
		Name:          r.Name,
		Price:         price,
		OriginalPrice: original,
		Image:         r.Image,
		Quantity:      r.Quantity,
	}, nil
}

func mapWishlistEntryToRecord(e domain.WishlistEntry) wishlistEntryRecord {
	return wishlistEntryRecord{
		ID:            e.ID,
		Name:          e.Name,
		Price:         priceToRecord(e.Price),
		OriginalPrice: originalToRecord(e.OriginalPrice),
		Image:         e.Image,
	}
}

func mapRecordToWishlistEntry(r wishlistEntryRecord, fallback currency.Unit) (domain.WishlistEntry, error) {
	price, err := priceFromRecord(r.Price, fallback)
	if err != nil {
		return domain.WishlistEntry{}, fmt.Errorf("priceFromRecord: %w", err)
	}

	original, err := originalFromRecord(r.OriginalPrice, fallback)
	if err != nil {
		return domain.WishlistEntry{}, fmt.Errorf("originalFromRecord: %w", err)
	}

	return domain.WishlistEntry{
		ID:            r.ID,
		Name:          r.Name,
		Price:         price,
		OriginalPrice: original,
		Image:         r.Image,
	}, nil
}

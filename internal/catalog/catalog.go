package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// PriceRange is a listing filter bucket. Lower bounds are inclusive, upper bounds exclusive.
type PriceRange string

const (
	PriceAny      PriceRange = ""
	PriceUnder10k PriceRange = "under-10000"
	Price10kTo20k PriceRange = "10000-20000"
	Price20kTo30k PriceRange = "20000-30000"
	Price30kTo50k PriceRange = "30000-50000"
	PriceAbove50k PriceRange = "above-50000"
)

const noBound int64 = -1

var priceBounds = map[PriceRange][2]int64{
	PriceUnder10k: {noBound, 10000},
	Price10kTo20k: {10000, 20000},
	Price20kTo30k: {20000, 30000},
	Price30kTo50k: {30000, 50000},
	PriceAbove50k: {50000, noBound},
}

func ParsePriceRange(s string) (PriceRange, error) {
	r := PriceRange(s)
	if r == PriceAny {
		return r, nil
	}
	if _, ok := priceBounds[r]; !ok {
		return PriceAny, fmt.Errorf("price range[%s] is not valid", s)
	}
	return r, nil
}

func (r PriceRange) Contains(price domain.Money) bool {
	bounds, ok := priceBounds[r]
	if !ok {
		return true
	}
	if bounds[0] != noBound && price.Amount.LessThan(decimal.NewFromInt(bounds[0])) {
		return false
	}
	if bounds[1] != noBound && !price.Amount.LessThan(decimal.NewFromInt(bounds[1])) {
		return false
	}
	return true
}

// Filter matches products; empty fields match everything.
type Filter struct {
	Category   string
	Brand      string
	PriceRange PriceRange
}

func (f Filter) Match(p domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	return f.PriceRange.Contains(p.Price)
}

// Catalog is an immutable in-memory product list. Lookups are linear scans.
type Catalog struct {
	products []domain.Product
}

func New(products []domain.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Default returns the built-in mocked catalog.
func Default() *Catalog {
	return New(seed)
}

func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Find(id int64) (domain.Product, bool) {
	i := slices.IndexFunc(c.products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Filter(f Filter) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Categories() []string {
	return c.distinct(func(p domain.Product) string { return p.Category })
}

func (c *Catalog) Brands() []string {
	return c.distinct(func(p domain.Product) string { return p.Brand })
}

func (c *Catalog) distinct(field func(domain.Product) string) []string {
	var out []string
	for _, p := range c.products {
		if v := field(p); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

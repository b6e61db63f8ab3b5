// Package catalog holds the set of tradable currencies and their unit prices
// as loaded from the price feed.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Currency is a tradable unit quoted in a common reference unit.
type Currency struct {
	Symbol string          `json:"currency"`
	Price  decimal.Decimal `json:"price"`
}

// Catalog is the read-only set of currencies for a session. It keeps the feed
// order for display and a symbol index for lookups.
type Catalog struct {
	currencies []Currency
	prices     map[string]decimal.Decimal
}

// New builds a catalog from the given currencies. When a symbol appears more
// than once the first occurrence wins.
func New(currencies []Currency) *Catalog {
	c := &Catalog{
		currencies: make([]Currency, 0, len(currencies)),
		prices:     make(map[string]decimal.Decimal, len(currencies)),
	}
	for _, cur := range currencies {
		if _, dup := c.prices[cur.Symbol]; dup {
			continue
		}
		c.prices[cur.Symbol] = cur.Price
		c.currencies = append(c.currencies, cur)
	}
	return c
}

// Lookup returns the unit price for symbol.
func (c *Catalog) Lookup(symbol string) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Decimal{}, false
	}
	price, ok := c.prices[symbol]
	return price, ok
}

// Currencies returns a copy of the currencies in feed order.
func (c *Catalog) Currencies() []Currency {
	if c == nil {
		return nil
	}
	out := make([]Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}

// Symbols returns the currency symbols in feed order.
func (c *Catalog) Symbols() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.currencies))
	for _, cur := range c.currencies {
		out = append(out, cur.Symbol)
	}
	return out
}

// Len returns the number of distinct currencies.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.currencies)
}

// Source provides the raw currency records of a catalog.
type Source interface {
	Fetch(ctx context.Context) ([]Currency, error)
}

// Load fetches the currencies from src and builds a catalog. Errors are
// *FetchError values.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	currencies, err := src.Fetch(ctx)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, networkFailure(err)
	}
	return New(currencies), nil
}

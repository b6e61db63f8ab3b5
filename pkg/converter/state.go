package converter

import "github.com/amirasaad/tokenswap/pkg/selection"

// Status is the lifecycle state of a Controller.
type Status int

const (
	// Uninitialized means no catalog has been loaded; conversions resolve to
	// an empty field.
	Uninitialized Status = iota
	// Ready means the catalog is loaded and conversions are possible.
	Ready
)

func (s Status) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AmountPair holds both amount fields as display strings so that partial
// input like "12." survives. The side not last edited is always derived.
type AmountPair struct {
	Sell       string
	Buy        string
	LastEdited selection.Side
}

// Get returns the text of side.
func (p AmountPair) Get(side selection.Side) string {
	if side == selection.Buy {
		return p.Buy
	}
	return p.Sell
}

func (p *AmountPair) set(side selection.Side, v string) {
	if side == selection.Buy {
		p.Buy = v
		return
	}
	p.Sell = v
}

// swap mirrors the pair, including which side was last edited.
func (p *AmountPair) swap() {
	p.Sell, p.Buy = p.Buy, p.Sell
	p.LastEdited = p.LastEdited.Other()
}

// View is the snapshot handed to the presentation layer after every change.
type View struct {
	Status     Status         `json:"status"`
	SellAmount string         `json:"sell_amount"`
	BuyAmount  string         `json:"buy_amount"`
	SellSymbol string         `json:"sell_symbol"`
	BuySymbol  string         `json:"buy_symbol"`
	Open       selection.Side `json:"open_dropdown"`
	LastEdited selection.Side `json:"last_edited"`
	Summary    string         `json:"summary"`
	Symbols    []string       `json:"symbols"`
}

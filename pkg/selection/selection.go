// Package selection tracks which currency is bound to each side of the
// converter and which dropdown, if any, is open.
package selection

import (
	"errors"
	"strings"
)

// Side identifies one of the two linked fields.
type Side int

const (
	None Side = iota
	Sell
	Buy
)

// ErrInvalidSide is returned by ParseSide for unknown names.
var ErrInvalidSide = errors.New("invalid side")

func (s Side) String() string {
	switch s {
	case Sell:
		return "sell"
	case Buy:
		return "buy"
	default:
		return "none"
	}
}

// Other returns the opposite side; None stays None.
func (s Side) Other() Side {
	switch s {
	case Sell:
		return Buy
	case Buy:
		return Sell
	default:
		return None
	}
}

// ParseSide parses "sell" or "buy" (case-insensitive).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sell":
		return Sell, nil
	case "buy":
		return Buy, nil
	default:
		return None, ErrInvalidSide
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is the selection of both sides. At most one dropdown is open at a
// time. Symbols need not be distinct nor present in the catalog.
type State struct {
	SellSymbol string `json:"sell_symbol"`
	BuySymbol  string `json:"buy_symbol"`
	Open       Side   `json:"open"`
}

// New returns a state with the given pair and all dropdowns closed.
func New(sell, buy string) State {
	return State{SellSymbol: sell, BuySymbol: buy}
}

// Select binds symbol to side and closes any open dropdown.
func (s *State) Select(side Side, symbol string) {
	switch side {
	case Sell:
		s.SellSymbol = symbol
	case Buy:
		s.BuySymbol = symbol
	}
	s.Open = None
}

// ToggleDropdown closes side's dropdown if it is open, otherwise opens it
// and closes the other one.
func (s *State) ToggleDropdown(side Side) {
	if side == None || s.Open == side {
		s.Open = None
		return
	}
	s.Open = side
}

// CloseAll closes every dropdown.
func (s *State) CloseAll() {
	s.Open = None
}

// Swap exchanges the two symbols. Applying it twice restores the state.
func (s *State) Swap() {
	s.SellSymbol, s.BuySymbol = s.BuySymbol, s.SellSymbol
}

// Symbol returns the symbol bound to side.
func (s State) Symbol(side Side) string {
	switch side {
	case Sell:
		return s.SellSymbol
	case Buy:
		return s.BuySymbol
	default:
		return ""
	}
}

// IsOpen reports whether side's dropdown is open.
func (s State) IsOpen(side Side) bool {
	return side != None && s.Open == side
}

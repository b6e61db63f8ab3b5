package selection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_ClosesDropdown(t *testing.T) {
	s := New("USD", "BLUR")
	s.ToggleDropdown(Buy)
	require.True(t, s.IsOpen(Buy))

	s.Select(Buy, "ETH")

	assert.Equal(t, "ETH", s.BuySymbol)
	assert.Equal(t, "USD", s.SellSymbol)
	assert.Equal(t, None, s.Open)
}

func TestToggleDropdown(t *testing.T) {
	tests := []struct {
		name     string
		toggles  []Side
		expected Side
	}{
		{name: "open sell", toggles: []Side{Sell}, expected: Sell},
		{name: "toggle sell twice", toggles: []Side{Sell, Sell}, expected: None},
		{name: "sell then buy", toggles: []Side{Sell, Buy}, expected: Buy},
		{name: "buy then sell then sell", toggles: []Side{Buy, Sell, Sell}, expected: None},
		{name: "none closes", toggles: []Side{Buy, None}, expected: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("USD", "BLUR")
			for _, side := range tt.toggles {
				s.ToggleDropdown(side)
			}
			assert.Equal(t, tt.expected, s.Open)
		})
	}
}

func TestToggleDropdown_Exclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New("USD", "BLUR")
	sides := []Side{Sell, Buy}

	for range 1000 {
		s.ToggleDropdown(sides[rng.Intn(len(sides))])
		assert.False(t, s.IsOpen(Sell) && s.IsOpen(Buy))
	}
}

func TestCloseAll(t *testing.T) {
	s := New("USD", "BLUR")
	s.ToggleDropdown(Sell)
	s.CloseAll()
	assert.False(t, s.IsOpen(Sell))
	assert.False(t, s.IsOpen(Buy))
}

func TestSwap_Involution(t *testing.T) {
	s := State{SellSymbol: "USD", BuySymbol: "BLUR", Open: Buy}
	original := s

	s.Swap()
	assert.Equal(t, "BLUR", s.SellSymbol)
	assert.Equal(t, "USD", s.BuySymbol)

	s.Swap()
	assert.Equal(t, original, s)
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("Sell")
	require.NoError(t, err)
	assert.Equal(t, Sell, side)

	side, err = ParseSide(" buy ")
	require.NoError(t, err)
	assert.Equal(t, Buy, side)

	_, err = ParseSide("both")
	assert.ErrorIs(t, err, ErrInvalidSide)

	assert.Equal(t, Buy, Sell.Other())
	assert.Equal(t, None, None.Other())
	assert.Equal(t, "none", None.String())
}

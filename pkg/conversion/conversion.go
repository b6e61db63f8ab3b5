// Package conversion computes one amount from another given two unit prices.
// Both directions of the converter go through Convert so they cannot drift.
package conversion

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept in every derived amount.
const Places = 2

// Convert returns amount * (fromPrice / toPrice) rounded half away from zero
// to two places. It reports false when toPrice is zero.
func Convert(amount, fromPrice, toPrice decimal.Decimal) (decimal.Decimal, bool) {
	if toPrice.IsZero() {
		return decimal.Decimal{}, false
	}
	return amount.Mul(fromPrice).DivRound(toPrice, Places), true
}

// Rate returns how many sell units one buy unit costs, rounded to two places.
func Rate(sellPrice, buyPrice decimal.Decimal) (decimal.Decimal, bool) {
	if buyPrice.IsZero() {
		return decimal.Decimal{}, false
	}
	return sellPrice.DivRound(buyPrice, Places), true
}

// ParseAmount parses user text made of digits and at most one '.'.
// Partial input such as "12." or ".5" is accepted; "", "." and "1.2.3" are not.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	if raw == "" || strings.Count(raw, ".") > 1 {
		return decimal.Decimal{}, false
	}
	digits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
		default:
			return decimal.Decimal{}, false
		}
	}
	if digits == 0 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Format renders d with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// ConvertText parses raw, converts it and formats the result. A nil price
// means the currency is unknown. It reports false whenever no amount can be
// derived; the caller should then clear the dependent field.
func ConvertText(raw string, fromPrice, toPrice *decimal.Decimal) (string, bool) {
	if fromPrice == nil || toPrice == nil {
		return "", false
	}
	amount, ok := ParseAmount(raw)
	if !ok {
		return "", false
	}
	out, ok := Convert(amount, *fromPrice, *toPrice)
	if !ok {
		return "", false
	}
	return Format(out), true
}

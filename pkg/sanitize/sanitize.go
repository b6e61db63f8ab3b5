// Package sanitize constrains raw amount input before it reaches the
// converter.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

// DecimalSeparator is the only separator accepted in amounts.
const DecimalSeparator = '.'

var editingKeys = map[string]struct{}{
	"Backspace":  {},
	"Delete":     {},
	"ArrowLeft":  {},
	"ArrowRight": {},
	"Tab":        {},
}

// FilterKeystroke reports whether a key event should reach an amount field.
// It is a best-effort gate; SanitizeText is the enforcement point.
func FilterKeystroke(key string) bool {
	if _, ok := editingKeys[key]; ok {
		return true
	}
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return isAllowed(r)
}

// SanitizeText drops every rune that is not an ASCII digit or the decimal
// separator. Repeated separators are kept; parsing rejects them later.
func SanitizeText(raw string) string {
	return strings.Map(func(r rune) rune {
		if isAllowed(r) {
			return r
		}
		return -1
	}, raw)
}

func isAllowed(r rune) bool {
	return (r >= '0' && r <= '9') || r == DecimalSeparator
}

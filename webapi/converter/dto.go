package converter

import "github.com/amirasaad/tokenswap/pkg/converter"

// AmountRequest edits one amount field. An empty value clears it.
type AmountRequest struct {
	Side  string `json:"side" validate:"required,oneof=sell buy"`
	Value string `json:"value"`
}

// SelectRequest binds a currency to a side.
type SelectRequest struct {
	Side   string `json:"side" validate:"required,oneof=sell buy"`
	Symbol string `json:"symbol" validate:"required"`
}

// ToggleRequest opens or closes a side's dropdown.
type ToggleRequest struct {
	Side string `json:"side" validate:"required,oneof=sell buy"`
}

// KeystrokeRequest asks whether a key should reach an amount field.
type KeystrokeRequest struct {
	Key string `json:"key" validate:"required"`
}

// KeystrokeResponse is the answer to a KeystrokeRequest.
type KeystrokeResponse struct {
	Accept bool `json:"accept"`
}

// SessionResponse carries a session id with its current view.
type SessionResponse struct {
	ID   string         `json:"id"`
	View converter.View `json:"view"`
}

// CurrencyResponse is one catalog entry.
type CurrencyResponse struct {
	Symbol string `json:"currency"`
	Price  string `json:"price"`
}

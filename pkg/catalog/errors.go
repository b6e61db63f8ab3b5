package catalog

import "errors"

var (
	// ErrNetworkFailure is returned when the price feed cannot be reached or
	// answers with a non-success status.
	ErrNetworkFailure = errors.New("price feed unavailable")
	// ErrParseFailure is returned when the price feed payload is malformed.
	ErrParseFailure = errors.New("malformed price feed")
)

// FetchError wraps a catalog load failure together with its kind
// (ErrNetworkFailure or ErrParseFailure).
type FetchError struct {
	Kind error
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func networkFailure(err error) error {
	return &FetchError{Kind: ErrNetworkFailure, Err: err}
}

func parseFailure(err error) error {
	return &FetchError{Kind: ErrParseFailure, Err: err}
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single feed request when no client is supplied.
const DefaultTimeout = 10 * time.Second

// feedRecord is one element of the price feed array. Fields other than
// currency and price (such as date) are ignored.
type feedRecord struct {
	Currency string   `json:"currency" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
}

// HTTPSource fetches the catalog from a JSON endpoint answering with an array
// of {"currency": string, "price": number} objects.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger
}

// HTTPOption customises an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.httpClient = c }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) { s.logger = l }
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		validate:   validator.New(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch performs a single GET against the feed.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Currency, error) {
	log := s.logger.With("url", s.url)
	log.Debug("Fetching price feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, networkFailure(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, networkFailure(fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, networkFailure(fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body)))
	}

	var records []feedRecord
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&records); err != nil {
		return nil, parseFailure(fmt.Errorf("failed to decode response: %w", err))
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, parseFailure(errors.New("unexpected data after price list"))
	}

	currencies := make([]Currency, 0, len(records))
	for i, rec := range records {
		if err := s.validate.Struct(rec); err != nil {
			return nil, parseFailure(fmt.Errorf("record %d: %w", i, err))
		}
		currencies = append(currencies, Currency{
			Symbol: rec.Currency,
			Price:  decimal.NewFromFloat(*rec.Price),
		})
	}

	log.Info("Price feed fetched", "records", len(records))
	return currencies, nil
}

// StaticSource serves a fixed list of currencies.
type StaticSource []Currency

// Fetch returns a copy of the list.
func (s StaticSource) Fetch(context.Context) ([]Currency, error) {
	out := make([]Currency, len(s))
	copy(out, s)
	return out, nil
}

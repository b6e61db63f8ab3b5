// Package converter orchestrates the catalog, the selection state and the
// conversion engine behind the two linked amount fields.
package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/conversion"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
	"github.com/amirasaad/tokenswap/pkg/sanitize"
	"github.com/amirasaad/tokenswap/pkg/selection"
	"github.com/shopspring/decimal"
)

const (
	DefaultSellSymbol = "USD"
	DefaultBuySymbol  = "BLUR"
)

var (
	// ErrNotReady is returned for amount edits before the catalog is loaded.
	ErrNotReady = errors.New("converter not ready")
	// ErrAlreadyLoaded is returned by Load once the controller is Ready.
	ErrAlreadyLoaded = errors.New("catalog already loaded")
	// ErrLoadInProgress is returned by Load while another load is running.
	ErrLoadInProgress = errors.New("catalog load in progress")
	// ErrClosed is returned by Load after Close, including when Close
	// happened while the fetch was in flight.
	ErrClosed = errors.New("converter closed")
)

// Controller keeps the sell and buy amounts consistent. The mutex only
// serialises callers; every operation runs to completion without blocking
// except the catalog fetch, which runs unlocked and is checked against the
// load generation before its result is applied.
type Controller struct {
	mu         sync.Mutex
	bus        eventbus.Bus
	logger     *slog.Logger
	defaults   selection.State
	catalog    *catalog.Catalog
	status     Status
	sel        selection.State
	amounts    AmountPair
	generation uint64
	loading    bool
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithBus sets the bus that receives StateChanged and LoadFailed events.
func WithBus(bus eventbus.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDefaultPair sets the pair selected when the catalog becomes available.
func WithDefaultPair(sell, buy string) Option {
	return func(c *Controller) { c.defaults = selection.New(sell, buy) }
}

// New creates an Uninitialized controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		bus:      eventbus.NewSimpleEventBus(),
		logger:   slog.Default(),
		defaults: selection.New(DefaultSellSymbol, DefaultBuySymbol),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sel = c.defaults
	return c
}

// Load fetches the catalog from src and moves the controller to Ready.
// On failure the controller stays Uninitialized, a single LoadFailed event is
// published and the error is returned.
func (c *Controller) Load(ctx context.Context, src catalog.Source) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.status == Ready:
		c.mu.Unlock()
		return ErrAlreadyLoaded
	case c.loading:
		c.mu.Unlock()
		return ErrLoadInProgress
	}
	c.loading = true
	token := c.generation
	c.mu.Unlock()

	cat, err := catalog.Load(ctx, src)

	c.mu.Lock()
	c.loading = false
	if c.closed || token != c.generation {
		c.mu.Unlock()
		c.logger.Debug("Discarding catalog load for closed converter")
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("Failed to load price catalog", "error", err)
		c.publish(ctx, LoadFailed{Err: err})
		return fmt.Errorf("failed to load price catalog: %w", err)
	}
	c.catalog = cat
	c.status = Ready
	c.sel = c.defaults
	direction := c.amounts.LastEdited
	if direction == selection.None {
		direction = selection.Sell
	}
	c.derive(direction)
	view := c.view()
	c.mu.Unlock()

	c.logger.Info("Price catalog loaded", "currencies", cat.Len(), "sell", view.SellSymbol, "buy", view.BuySymbol)
	c.publish(ctx, StateChanged{View: view})
	return nil
}

// Close invalidates any in-flight load. Later loads fail with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
}

// EditAmount stores the sanitized text of side and recomputes the other side.
func (c *Controller) EditAmount(side selection.Side, raw string) (View, error) {
	if side != selection.Sell && side != selection.Buy {
		return c.View(), selection.ErrInvalidSide
	}
	c.mu.Lock()
	if c.status != Ready {
		view := c.view()
		c.mu.Unlock()
		return view, ErrNotReady
	}
	c.amounts.set(side, sanitize.SanitizeText(raw))
	c.amounts.LastEdited = side
	c.derive(side)
	return c.commit(), nil
}

// EditSell is EditAmount for the sell side.
func (c *Controller) EditSell(raw string) (View, error) {
	return c.EditAmount(selection.Sell, raw)
}

// EditBuy is EditAmount for the buy side.
func (c *Controller) EditBuy(raw string) (View, error) {
	return c.EditAmount(selection.Buy, raw)
}

// Select binds symbol to side, closes the dropdowns and re-runs the
// conversion in the direction of the last edit (sell to buy by default).
func (c *Controller) Select(side selection.Side, symbol string) (View, error) {
	if side != selection.Sell && side != selection.Buy {
		return c.View(), selection.ErrInvalidSide
	}
	c.mu.Lock()
	c.sel.Select(side, symbol)
	direction := c.amounts.LastEdited
	if direction == selection.None {
		direction = selection.Sell
	}
	c.derive(direction)
	return c.commit(), nil
}

// ToggleDropdown opens or closes side's dropdown.
func (c *Controller) ToggleDropdown(side selection.Side) View {
	c.mu.Lock()
	c.sel.ToggleDropdown(side)
	return c.commit()
}

// CloseDropdowns closes every dropdown.
func (c *Controller) CloseDropdowns() View {
	c.mu.Lock()
	c.sel.CloseAll()
	return c.commit()
}

// Swap exchanges the symbols and the displayed amounts. No recomputation is
// needed since the mirrored pair is already consistent.
func (c *Controller) Swap() View {
	c.mu.Lock()
	c.sel.Swap()
	c.amounts.swap()
	return c.commit()
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Status returns the lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Selection returns the current selection state.
func (c *Controller) Selection() selection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Amounts returns the current amount pair.
func (c *Controller) Amounts() AmountPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.amounts
}

// Catalog returns the loaded catalog, or nil before Ready.
func (c *Controller) Catalog() *catalog.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// derive recomputes the side opposite to from. Callers hold c.mu.
func (c *Controller) derive(from selection.Side) {
	to := from.Other()
	if c.status != Ready {
		c.amounts.set(to, "")
		return
	}
	out, ok := conversion.ConvertText(
		c.amounts.Get(from),
		c.price(c.sel.Symbol(from)),
		c.price(c.sel.Symbol(to)),
	)
	if !ok {
		out = ""
	}
	c.amounts.set(to, out)
}

func (c *Controller) price(symbol string) *decimal.Decimal {
	p, ok := c.catalog.Lookup(symbol)
	if !ok {
		return nil
	}
	return &p
}

// summary renders "1 <buy> = <rate> <sell> ($<sellPrice>)". Callers hold c.mu.
func (c *Controller) summary() string {
	if c.status != Ready {
		return ""
	}
	sellPrice, ok := c.catalog.Lookup(c.sel.SellSymbol)
	if !ok {
		return ""
	}
	buyPrice, ok := c.catalog.Lookup(c.sel.BuySymbol)
	if !ok {
		return ""
	}
	rate, ok := conversion.Rate(sellPrice, buyPrice)
	if !ok {
		return ""
	}
	return fmt.Sprintf("1 %s = %s %s ($%s)",
		c.sel.BuySymbol, conversion.Format(rate), c.sel.SellSymbol, sellPrice.String())
}

// Summary returns the rate line for the current pair, or "" if unknown.
func (c *Controller) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

func (c *Controller) view() View {
	return View{
		Status:     c.status,
		SellAmount: c.amounts.Sell,
		BuyAmount:  c.amounts.Buy,
		SellSymbol: c.sel.SellSymbol,
		BuySymbol:  c.sel.BuySymbol,
		Open:       c.sel.Open,
		LastEdited: c.amounts.LastEdited,
		Summary:    c.summary(),
		Symbols:    c.catalog.Symbols(),
	}
}

// commit snapshots the view, releases c.mu and notifies subscribers.
func (c *Controller) commit() View {
	view := c.view()
	c.mu.Unlock()
	c.publish(context.Background(), StateChanged{View: view})
	return view
}

func (c *Controller) publish(ctx context.Context, event eventbus.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, event); err != nil {
		c.logger.Warn("Failed to publish converter event", "event_type", event.Type(), "error", err)
	}
}

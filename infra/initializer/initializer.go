package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amirasaad/tokenswap/pkg/app"
	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/config"
	"github.com/amirasaad/tokenswap/pkg/converter"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
)

// InitializeDependencies builds the logger, the shared price source and the
// event bus for the application.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	if cfg == nil || cfg.Prices == nil || cfg.Converter == nil {
		return nil, errors.New("incomplete configuration")
	}
	if cfg.Prices.URL == "" {
		return nil, fmt.Errorf("prices url is required")
	}

	logger := setupLogger(cfg.Log)

	source := catalog.NewHTTPSource(
		cfg.Prices.URL,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Prices.HTTPTimeout}),
		catalog.WithLogger(logger.With("component", "catalog")),
	)

	bus := eventbus.NewSimpleEventBus()
	subscribeNotices(bus, logger)

	logger.Info("Dependencies initialized",
		"default_sell", cfg.Converter.DefaultSell,
		"default_buy", cfg.Converter.DefaultBuy,
	)

	return &app.Deps{
		Source: catalog.NewSharedSource(source),
		Bus:    bus,
		Logger: logger,
		Config: cfg,
	}, nil
}

// subscribeNotices surfaces converter events in the log. Load failures are
// the user-visible notice; state changes are traced at debug level.
func subscribeNotices(bus eventbus.Bus, logger *slog.Logger) {
	bus.Subscribe(converter.EventTypeLoadFailed, func(_ context.Context, e eventbus.Event) {
		if ev, ok := e.(converter.LoadFailed); ok {
			logger.Warn("Price catalog unavailable; conversions disabled", "error", ev.Err)
		}
	})
	bus.Subscribe(converter.EventTypeStateChanged, func(_ context.Context, e eventbus.Event) {
		if ev, ok := e.(converter.StateChanged); ok {
			logger.Debug("Converter state changed",
				"status", ev.View.Status.String(),
				"sell", ev.View.SellSymbol,
				"buy", ev.View.BuySymbol,
				"sell_amount", ev.View.SellAmount,
				"buy_amount", ev.View.BuyAmount,
			)
		}
	})
}

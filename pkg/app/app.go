package app

import (
	"log/slog"

	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/config"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
	converterSvc "github.com/amirasaad/tokenswap/pkg/service/converter"
)

// Deps contains the infrastructure shared by every service.
type Deps struct {
	Source catalog.Source
	Bus    eventbus.Bus
	Logger *slog.Logger
	Config *config.App
}

type App struct {
	Deps             *Deps
	Config           *config.App
	ConverterService *converterSvc.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	var sell, buy string
	if cfg != nil && cfg.Converter != nil {
		sell, buy = cfg.Converter.DefaultSell, cfg.Converter.DefaultBuy
	}
	return &App{
		Deps:             deps,
		Config:           cfg,
		ConverterService: converterSvc.New(deps.Source, deps.Bus, sell, buy, deps.Logger),
	}
}

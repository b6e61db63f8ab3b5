package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/converter"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or closed session ids.
var ErrSessionNotFound = errors.New("converter session not found")

// Service owns the converter sessions of the presentation layer. Each session
// is an independent Controller; all of them read the same price source.
type Service struct {
	source      catalog.Source
	bus         eventbus.Bus
	logger      *slog.Logger
	defaultSell string
	defaultBuy  string

	mu       sync.RWMutex
	sessions map[uuid.UUID]*converter.Controller
}

// New creates a converter service.
func New(
	source catalog.Source,
	bus eventbus.Bus,
	defaultSell, defaultBuy string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultSell == "" {
		defaultSell = converter.DefaultSellSymbol
	}
	if defaultBuy == "" {
		defaultBuy = converter.DefaultBuySymbol
	}
	return &Service{
		source:      source,
		bus:         bus,
		logger:      logger.With("service", "Converter"),
		defaultSell: defaultSell,
		defaultBuy:  defaultBuy,
		sessions:    make(map[uuid.UUID]*converter.Controller),
	}
}

// Create starts a session and loads its catalog. A session whose load fails
// is discarded.
func (s *Service) Create(ctx context.Context) (uuid.UUID, converter.View, error) {
	id := uuid.New()
	log := s.logger.With("session", id.String())

	opts := []converter.Option{
		converter.WithDefaultPair(s.defaultSell, s.defaultBuy),
		converter.WithLogger(log),
	}
	if s.bus != nil {
		opts = append(opts, converter.WithBus(s.bus))
	}
	ctrl := converter.New(opts...)

	if err := ctrl.Load(ctx, s.source); err != nil {
		ctrl.Close()
		return uuid.Nil, ctrl.View(), err
	}

	s.mu.Lock()
	s.sessions[id] = ctrl
	s.mu.Unlock()

	log.Info("Converter session created")
	return id, ctrl.View(), nil
}

// Get returns the controller of session id.
func (s *Service) Get(id uuid.UUID) (*converter.Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return ctrl, nil
}

// Delete closes and forgets session id.
func (s *Service) Delete(id uuid.UUID) error {
	s.mu.Lock()
	ctrl, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	ctrl.Close()
	s.logger.Info("Converter session closed", "session", id.String())
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Currencies returns the catalog in feed order.
func (s *Service) Currencies(ctx context.Context) ([]catalog.Currency, error) {
	cat, err := catalog.Load(ctx, s.source)
	if err != nil {
		return nil, fmt.Errorf("failed to load price catalog: %w", err)
	}
	return cat.Currencies(), nil
}

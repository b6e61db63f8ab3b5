// Package eventbus is a synchronous in-process publish/subscribe bus used to
// push converter state to presentation adapters.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Event is anything published on the bus.
type Event interface {
	Type() string
}

// Handler receives published events.
type Handler func(context.Context, Event)

// Bus defines the contract for publishing and subscribing to events.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler Handler)
}

// SimpleEventBus dispatches events to handlers in subscription order on the
// publishing goroutine.
type SimpleEventBus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

// NewSimpleEventBus creates an empty bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string][]Handler)}
}

// Publish delivers event to every handler subscribed to its type.
func (b *SimpleEventBus) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("eventbus: nil event")
	}
	slog.Debug("EventBus.Publish", "event_type", event.Type(), "concrete_type", fmt.Sprintf("%T", event))
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

// Subscribe registers handler for eventType.
func (b *SimpleEventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

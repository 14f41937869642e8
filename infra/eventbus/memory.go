package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

// MemoryEventBus delivers events synchronously to in-process handlers.
type MemoryEventBus struct {
	handlers     map[events.EventType][]eventbus.HandlerFunc
	mu           sync.RWMutex
	logger       *slog.Logger
	published    []events.Event
	publishedCap int
}

// MemoryOption configures a MemoryEventBus.
type MemoryOption func(*MemoryEventBus)

// WithPublishedLog keeps the last limit emitted events for Published. The
// log is off by default so a long running process holds no history.
func WithPublishedLog(limit int) MemoryOption {
	return func(b *MemoryEventBus) { b.publishedCap = limit }
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...MemoryOption) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &MemoryEventBus{
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit runs every handler registered for the event type, in registration
// order. All handlers run; their errors are joined.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := events.EventType(event.Type())

	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.record(event)
	b.mu.Unlock()

	var errs []error
	for _, handler := range handlers {
		if err := b.run(ctx, handler, event); err != nil {
			b.logger.Error("handler error", "event_type", eventType, "event_id", event.EventID(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *MemoryEventBus) run(ctx context.Context, handler eventbus.HandlerFunc, event events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, event)
}

// record appends to the published log, dropping the oldest entries past the
// cap. Callers hold b.mu.
func (b *MemoryEventBus) record(event events.Event) {
	if b.publishedCap <= 0 {
		return
	}
	b.published = append(b.published, event)
	if over := len(b.published) - b.publishedCap; over > 0 {
		b.published = append(b.published[:0:0], b.published[over:]...)
	}
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Published returns a copy of the published log, oldest first. It is empty
// unless the bus was created WithPublishedLog.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]events.Event(nil), b.published...)
}

// Close is a no-op; it lets callers treat every bus alike.
func (b *MemoryEventBus) Close() error { return nil }

var _ eventbus.Bus = (*MemoryEventBus)(nil)

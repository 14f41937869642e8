// Package eventbus defines how domain events leave the application layer.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// HandlerFunc handles one event. A non-nil error tells the bus the event was
// not processed.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus publishes events and routes them to registered handlers.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}

// Dispatcher hands a batch of events to downstream delivery, in order.
type Dispatcher interface {
	Dispatch(ctx context.Context, evts []events.Event) error
}

// BusDispatcher dispatches through a Bus.
type BusDispatcher struct {
	bus    Bus
	logger *slog.Logger
}

// NewDispatcher returns a Dispatcher emitting on bus.
func NewDispatcher(bus Bus, logger *slog.Logger) *BusDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BusDispatcher{bus: bus, logger: logger.With("component", "dispatcher")}
}

// Dispatch emits evts in order and stops at the first failure. Events before
// the failing one have been emitted; delivery is at-least-once.
func (d *BusDispatcher) Dispatch(ctx context.Context, evts []events.Event) error {
	for i, e := range evts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.bus.Emit(ctx, e); err != nil {
			d.logger.Error("emit failed",
				"event_type", e.Type(), "event_id", e.EventID(), "position", i, "error", err)
			return fmt.Errorf("dispatch %s (%d of %d): %w", e.Type(), i+1, len(evts), err)
		}
		d.logger.Debug("event dispatched", "event_type", e.Type(), "event_id", e.EventID())
	}
	return nil
}

var _ Dispatcher = (*BusDispatcher)(nil)

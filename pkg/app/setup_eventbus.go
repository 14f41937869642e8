// Package app assembles the account service, the outbox relay and the event
// handlers on top of the infrastructure built by the initializer.
package app

import (
	"context"
	"log/slog"
	"slices"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

// setupEventBus registers the audit handler for every event type. Events can
// arrive twice (outbox relay, broker redelivery), so it runs behind an
// idempotency check keyed on the event id.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	audit := eventbus.WithIdempotency(
		auditHandler(logger),
		a.Audit,
		eventbus.ByEventID,
		"AuditHandler",
		logger,
	)
	types := events.Types()
	slices.Sort(types)
	for _, t := range types {
		bus.Register(events.EventType(t), audit)
	}
	logger.Info("Event handlers registered", "event_types", len(types))
}

func auditHandler(logger *slog.Logger) eventbus.HandlerFunc {
	log := logger.With("handler", "audit")
	return func(ctx context.Context, e events.Event) error {
		log.InfoContext(ctx, "📒 Account event",
			"event_type", e.Type(),
			"event_id", e.EventID(),
			"account_id", e.AggregateID(),
			"occurred_on", e.OccurredOn(),
		)
		return nil
	}
}

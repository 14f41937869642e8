// Package outbox redelivers events that were committed but never dispatched.
package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Relay polls the outbox and dispatches pending events. Events of one
// aggregate go out in order; different aggregates are dispatched in parallel.
type Relay struct {
	uow        repository.UnitOfWork
	dispatcher eventbus.Dispatcher
	interval   time.Duration
	batch      int
	workers    int
	logger     *slog.Logger
}

// NewRelay creates a Relay. A nil cfg uses a 5s interval, batches of 100 and
// four workers.
func NewRelay(
	uow repository.UnitOfWork,
	dispatcher eventbus.Dispatcher,
	cfg *config.Outbox,
	logger *slog.Logger,
) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Relay{
		uow:        uow,
		dispatcher: dispatcher,
		interval:   5 * time.Second,
		batch:      100,
		workers:    4,
		logger:     logger.With("component", "outbox-relay"),
	}
	if cfg != nil {
		if cfg.RelayInterval > 0 {
			r.interval = cfg.RelayInterval
		}
		if cfg.BatchSize > 0 {
			r.batch = cfg.BatchSize
		}
		if cfg.Workers > 0 {
			r.workers = cfg.Workers
		}
	}
	return r
}

// Run relays on every tick until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("Outbox relay started", "interval", r.interval, "batch", r.batch)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopped")
			return nil
		case <-ticker.C:
			n, err := r.RelayOnce(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("Outbox relay pass failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Info("Outbox events relayed", "count", n)
			}
		}
	}
}

// RelayOnce dispatches one batch and returns how many events went out.
// Delivery failures are recorded on the outbox row and are not returned; the
// row stays pending for the next pass.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	outbox, err := r.uow.OutboxRepository()
	if err != nil {
		return 0, err
	}
	records, err := outbox.Pending(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	var (
		mu         sync.Mutex
		dispatched []uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, stream := range byAggregate(records) {
		g.Go(func() error {
			for _, rec := range stream {
				evt := rec.Event
				if err := r.dispatcher.Dispatch(gctx, []events.Event{evt}); err != nil {
					r.logger.Warn("Relay dispatch failed",
						"event_id", evt.EventID(), "event_type", evt.Type(),
						"attempts", rec.Attempts+1, "error", err)
					if err := outbox.MarkFailed(gctx, evt.EventID(), err); err != nil {
						return err
					}
					// later events of this aggregate wait for the next pass
					return nil
				}
				mu.Lock()
				dispatched = append(dispatched, evt.EventID())
				mu.Unlock()
			}
			return nil
		})
	}
	groupErr := g.Wait()

	if len(dispatched) > 0 {
		if err := outbox.MarkDispatched(ctx, dispatched); err != nil {
			return len(dispatched), errors.Join(groupErr, err)
		}
	}
	return len(dispatched), groupErr
}

// byAggregate splits records per aggregate, keeping their relative order.
func byAggregate(records []repository.OutboxRecord) [][]repository.OutboxRecord {
	index := make(map[uuid.UUID]int)
	var streams [][]repository.OutboxRecord
	for _, rec := range records {
		id := rec.Event.AggregateID()
		i, ok := index[id]
		if !ok {
			i = len(streams)
			index[id] = i
			streams = append(streams, nil)
		}
		streams[i] = append(streams[i], rec)
	}
	return streams
}

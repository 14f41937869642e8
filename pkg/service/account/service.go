// Package account is the application layer around the account aggregate.
//
// Every write follows the same path: lock the account id in process, load the
// aggregate, run one domain operation, save it under the loaded version
// together with its events in the outbox, then dispatch the drained events
// once the unit of work committed. A lost optimistic concurrency race reloads
// and reapplies the operation with exponential backoff.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	defaultRetryInitial = 20 * time.Millisecond
	defaultRetryMax     = 500 * time.Millisecond
)

// Deps holds the collaborators of Service.
type Deps struct {
	Uow        repository.UnitOfWork
	Dispatcher eventbus.Dispatcher
	// Allocator defaults to a NumberAllocator over Uow.
	Allocator Allocator
	Config    *config.Account
	Logger    *slog.Logger
}

// Service provides the account use cases.
type Service struct {
	uow        repository.UnitOfWork
	dispatcher eventbus.Dispatcher
	allocator  Allocator
	cfg        config.Account
	locks      *keyedMutex
	logger     *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := config.Account{
		AllocationAttempts:   10,
		SaveRetries:          5,
		RetryInitialInterval: defaultRetryInitial,
		RetryMaxInterval:     defaultRetryMax,
	}
	if deps.Config != nil {
		cfg = *deps.Config
	}
	allocator := deps.Allocator
	if allocator == nil {
		allocator = NewNumberAllocator(deps.Uow, cfg.AllocationAttempts, logger)
	}
	return &Service{
		uow:        deps.Uow,
		dispatcher: deps.Dispatcher,
		allocator:  allocator,
		cfg:        cfg,
		locks:      newKeyedMutex(),
		logger:     logger.With("service", "account"),
	}
}

// work is one attempt of a write use case inside a unit of work. It returns
// the aggregates it changed, each with the version it was loaded at.
type work func(uow repository.UnitOfWork) ([]loaded, error)

type loaded struct {
	acc      *account.Account
	expected int64
}

// execute runs w with conflict retries and dispatches the events of the
// attempt that committed.
func (s *Service) execute(ctx context.Context, op string, w work) error {
	logger := s.logger.With("op", op)

	var committed []loaded
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		committed = nil
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			changed, err := w(uow)
			if err != nil {
				return err
			}
			if err := save(ctx, uow, changed); err != nil {
				return err
			}
			committed = changed
			return nil
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, domain.ErrConcurrencyConflict):
			logger.Warn("concurrency conflict, retrying", "attempt", attempt)
			return err
		default:
			return backoff.Permanent(err)
		}
	}, s.retryPolicy(ctx))
	if err != nil {
		logger.Debug("operation failed", "attempts", attempt, "error", err)
		return err
	}

	var evts []events.Event
	for _, l := range committed {
		evts = append(evts, l.acc.PullEvents()...)
	}
	s.dispatch(ctx, logger, evts)
	return nil
}

// save persists every changed aggregate and appends its events to the
// outbox in the same unit of work.
func save(ctx context.Context, uow repository.UnitOfWork, changed []loaded) error {
	repo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	outbox, err := uow.OutboxRepository()
	if err != nil {
		return err
	}
	for _, l := range changed {
		if err := repo.Save(ctx, l.acc, l.expected); err != nil {
			return fmt.Errorf("save account %s: %w", l.acc.ID(), err)
		}
		if err := outbox.Append(ctx, l.acc.PendingEvents()); err != nil {
			return fmt.Errorf("append events of %s: %w", l.acc.ID(), err)
		}
	}
	return nil
}

// dispatch hands committed events downstream. A failure leaves them in the
// outbox for the relay; the write already succeeded, so it is only logged.
func (s *Service) dispatch(ctx context.Context, logger *slog.Logger, evts []events.Event) {
	if len(evts) == 0 || s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evts); err != nil {
		logger.Warn("dispatch failed, outbox relay will retry", "events", len(evts), "error", err)
		return
	}
	outbox, err := s.uow.OutboxRepository()
	if err != nil {
		logger.Error("outbox unavailable", "error", err)
		return
	}
	ids := make([]uuid.UUID, len(evts))
	for i, e := range evts {
		ids[i] = e.EventID()
	}
	if err := outbox.MarkDispatched(ctx, ids); err != nil {
		logger.Error("failed to mark events dispatched", "error", err)
	}
}

func (s *Service) retryPolicy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.RetryInitialInterval
	b.MaxInterval = s.cfg.RetryMaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.cfg.SaveRetries)), ctx)
}

// mutate loads one account, applies fn and saves it.
func (s *Service) mutate(
	ctx context.Context,
	op string,
	id uuid.UUID,
	fn func(acc *account.Account) error,
) (*account.Account, error) {
	if id == uuid.Nil {
		return nil, domain.InvalidInputf("account id is required")
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	var result *account.Account
	err := s.execute(ctx, op, func(uow repository.UnitOfWork) ([]loaded, error) {
		repo, err := uow.AccountRepository()
		if err != nil {
			return nil, err
		}
		acc, err := repo.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		expected := acc.Version()
		if err := fn(acc); err != nil {
			return nil, err
		}
		result = acc
		return []loaded{{acc: acc, expected: expected}}, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(op+" completed", "account_id", id, "version", result.Version())
	return result, nil
}

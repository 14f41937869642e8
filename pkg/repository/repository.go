// Package repository defines the storage contracts the application layer
// works against.
package repository

import (
	"context"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/google/uuid"
)

// AccountRepository loads and saves whole Account aggregates.
type AccountRepository interface {
	// Load returns the account with id or domain.ErrNotFound.
	Load(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// LoadByAccountNumber returns the account with number or domain.ErrNotFound.
	LoadByAccountNumber(ctx context.Context, number account.Number) (*account.Account, error)
	// NumberExists reports whether an account already uses number.
	NumberExists(ctx context.Context, number account.Number) (bool, error)
	// Save persists acc if the stored version still equals expectedVersion (0
	// for a new account) and records the new version on acc. A mismatch returns
	// domain.ErrConcurrencyConflict and leaves storage untouched.
	Save(ctx context.Context, acc *account.Account, expectedVersion int64) error
}

// OutboxRecord is an event waiting in the outbox.
type OutboxRecord struct {
	Event     events.Event
	Attempts  int
	LastError string
	CreatedAt time.Time
}

// OutboxRepository stores events in the same transaction as the aggregate
// they came from.
type OutboxRepository interface {
	// Append stores evts, in order, as undelivered.
	Append(ctx context.Context, evts []events.Event) error
	// Pending returns up to limit undelivered records, oldest first.
	Pending(ctx context.Context, limit int) ([]OutboxRecord, error)
	// MarkDispatched flags the records with the given event ids as delivered.
	MarkDispatched(ctx context.Context, eventIDs []uuid.UUID) error
	// MarkFailed records a failed delivery attempt.
	MarkFailed(ctx context.Context, eventID uuid.UUID, cause error) error
}

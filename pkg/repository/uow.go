package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to fn share fn's
// transaction, so a transfer saves both accounts and their outbox rows
// atomically or not at all.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	OutboxRepository() (OutboxRepository, error)
}

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Allocator hands out account numbers not used by any stored account.
type Allocator interface {
	Allocate(ctx context.Context, typ account.Type) (account.Number, error)
}

// NumberAllocator draws random numbers for a type and keeps the first one the
// store does not know, giving up after a fixed number of draws.
type NumberAllocator struct {
	uow      repository.UnitOfWork
	attempts int
	generate func(account.Type) (account.Number, error)
	logger   *slog.Logger
}

// NewNumberAllocator creates an allocator making at most attempts draws.
func NewNumberAllocator(uow repository.UnitOfWork, attempts int, logger *slog.Logger) *NumberAllocator {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NumberAllocator{
		uow:      uow,
		attempts: attempts,
		generate: account.GenerateNumber,
		logger:   logger.With("component", "number-allocator"),
	}
}

// Allocate implements Allocator. It returns domain.ErrAllocationFailed when
// every draw collided.
func (a *NumberAllocator) Allocate(ctx context.Context, typ account.Type) (account.Number, error) {
	if !typ.IsValid() {
		return "", domain.InvalidInputf("unknown account type %q", typ)
	}
	repo, err := a.uow.AccountRepository()
	if err != nil {
		return "", err
	}
	for i := 1; i <= a.attempts; i++ {
		number, err := a.generate(typ)
		if err != nil {
			return "", err
		}
		exists, err := repo.NumberExists(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check account number: %w", err)
		}
		if !exists {
			return number, nil
		}
		a.logger.Debug("account number collision", "type", typ, "attempt", i)
	}
	return "", fmt.Errorf("%w: no free %s number after %d attempts", domain.ErrAllocationFailed, typ, a.attempts)
}

var _ Allocator = (*NumberAllocator)(nil)

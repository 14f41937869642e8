package account

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/google/uuid"
)

// GetAccount returns the account with id.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.Load(ctx, id)
}

// GetAccountByNumber returns the account with the given number.
func (s *Service) GetAccountByNumber(ctx context.Context, number string) (*account.Account, error) {
	n, err := account.ParseNumber(number)
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.LoadByAccountNumber(ctx, n)
}

// ListTransactions returns the ledger of the account, oldest first.
func (s *Service) ListTransactions(ctx context.Context, id uuid.UUID) ([]account.Transaction, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return acc.Transactions(), nil
}

// ListActivities returns the activity log of the account, oldest first.
func (s *Service) ListActivities(ctx context.Context, id uuid.UUID) ([]account.Activity, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return acc.Activities(), nil
}

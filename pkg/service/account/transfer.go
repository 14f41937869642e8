package account

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Transfer moves money between two accounts of the same type and currency.
// Both accounts and their outbox rows are saved in one unit of work.
func (s *Service) Transfer(ctx context.Context, cmd TransferCommand) (account.TransferResult, error) {
	if err := validateCommand(cmd); err != nil {
		return account.TransferResult{}, err
	}
	if cmd.FromAccountID == cmd.ToAccountID {
		return account.TransferResult{}, domain.ErrSameAccount
	}
	logger := s.logger.With("from", cmd.FromAccountID, "to", cmd.ToAccountID, "amount", cmd.Amount)

	unlock := s.locks.Lock(cmd.FromAccountID, cmd.ToAccountID)
	defer unlock()

	var result account.TransferResult
	err := s.execute(ctx, "transfer", func(uow repository.UnitOfWork) ([]loaded, error) {
		repo, err := uow.AccountRepository()
		if err != nil {
			return nil, err
		}
		from, err := repo.Load(ctx, cmd.FromAccountID)
		if err != nil {
			return nil, err
		}
		to, err := repo.Load(ctx, cmd.ToAccountID)
		if err != nil {
			return nil, err
		}
		fromVersion, toVersion := from.Version(), to.Version()

		result, err = account.Transfer(from, to, cmd.Amount, cmd.Description)
		if err != nil {
			return nil, err
		}
		return []loaded{
			{acc: from, expected: fromVersion},
			{acc: to, expected: toVersion},
		}, nil
	})
	if err != nil {
		logger.Error("Transfer failed", "error", err)
		return account.TransferResult{}, err
	}
	logger.Info("Transfer completed", "out_tx", result.Out.ID, "in_tx", result.In.ID)
	return result, nil
}

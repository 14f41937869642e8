package account

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
)

// Create opens a new account under a freshly allocated number. The number is
// drawn before the unit of work starts; a number taken in between surfaces as
// domain.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*account.Account, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	logger := s.logger.With("customer_id", cmd.CustomerID, "type", cmd.Type)

	var opts []account.Option
	if cmd.MinimumBalance != nil {
		opts = append(opts, account.WithMinimumBalance(*cmd.MinimumBalance))
	}
	if cmd.DailyLimit != nil {
		opts = append(opts, account.WithDailyLimit(*cmd.DailyLimit))
	}

	number, err := s.allocator.Allocate(ctx, cmd.Type)
	if err != nil {
		logger.Error("Account number allocation failed", "error", err)
		return nil, err
	}
	created, err := account.Create(number, cmd.CustomerID, cmd.Name, cmd.Type, cmd.InitialBalance, opts...)
	if err != nil {
		return nil, err
	}
	err = s.execute(ctx, "create", func(repository.UnitOfWork) ([]loaded, error) {
		return []loaded{{acc: created, expected: 0}}, nil
	})
	if err != nil {
		logger.Error("Create failed", "error", err)
		return nil, err
	}
	logger.Info("Account created", "account_id", created.ID(), "number", created.Number())
	return created, nil
}

// Deposit credits the account.
func (s *Service) Deposit(ctx context.Context, cmd MoneyCommand) (account.Transaction, error) {
	return s.post(ctx, "deposit", cmd, (*account.Account).Deposit)
}

// Withdraw debits the account.
func (s *Service) Withdraw(ctx context.Context, cmd MoneyCommand) (account.Transaction, error) {
	return s.post(ctx, "withdraw", cmd, (*account.Account).Withdraw)
}

// ChargeFee debits a fee from the account.
func (s *Service) ChargeFee(ctx context.Context, cmd MoneyCommand) (account.Transaction, error) {
	return s.post(ctx, "charge_fee", cmd, (*account.Account).ChargeFee)
}

// CreditInterest credits interest to a Savings or Investment account.
func (s *Service) CreditInterest(ctx context.Context, cmd MoneyCommand) (account.Transaction, error) {
	return s.post(ctx, "credit_interest", cmd, (*account.Account).CreditInterest)
}

func (s *Service) post(
	ctx context.Context,
	op string,
	cmd MoneyCommand,
	apply func(*account.Account, money.Money, string) (account.Transaction, error),
) (account.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return account.Transaction{}, err
	}
	var tx account.Transaction
	_, err := s.mutate(ctx, op, cmd.AccountID, func(acc *account.Account) error {
		var err error
		tx, err = apply(acc, cmd.Amount, cmd.Description)
		return err
	})
	return tx, err
}

// ScheduleDeposit records a pending deposit; the balance changes when the
// transaction is completed with UpdateTransactionStatus.
func (s *Service) ScheduleDeposit(ctx context.Context, cmd ScheduleDepositCommand) (account.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return account.Transaction{}, err
	}
	var tx account.Transaction
	_, err := s.mutate(ctx, "schedule_deposit", cmd.AccountID, func(acc *account.Account) error {
		var err error
		tx, err = acc.ScheduleDeposit(cmd.Amount, cmd.Description, cmd.ExternalReference)
		return err
	})
	return tx, err
}

// UpdateTransactionStatus moves a ledger entry to status.
func (s *Service) UpdateTransactionStatus(
	ctx context.Context,
	accountID, transactionID uuid.UUID,
	status account.TransactionStatus,
) (account.Transaction, error) {
	if transactionID == uuid.Nil {
		return account.Transaction{}, domain.InvalidInputf("transaction id is required")
	}
	acc, err := s.mutate(ctx, "update_transaction_status", accountID, func(acc *account.Account) error {
		return acc.UpdateTransactionStatus(transactionID, status)
	})
	if err != nil {
		return account.Transaction{}, err
	}
	tx, _ := acc.Transaction(transactionID)
	return tx, nil
}

// Rename changes the account name.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*account.Account, error) {
	return s.mutate(ctx, "rename", id, func(acc *account.Account) error {
		return acc.UpdateName(name)
	})
}

// Freeze blocks all money movement on the account.
func (s *Service) Freeze(ctx context.Context, id uuid.UUID, reason string) (*account.Account, error) {
	return s.mutate(ctx, "freeze", id, func(acc *account.Account) error {
		return acc.Freeze(reason)
	})
}

// Unfreeze reactivates a frozen account.
func (s *Service) Unfreeze(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.mutate(ctx, "unfreeze", id, (*account.Account).Unfreeze)
}

// Close closes an account with a zero balance and nothing in flight.
func (s *Service) Close(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.mutate(ctx, "close", id, (*account.Account).Close)
}

package repository

import (
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/shopspring/decimal"
)

func toAccountModel(s account.Snapshot, version int64) Account {
	row := Account{
		ID:             s.ID,
		Number:         s.Number.String(),
		CustomerID:     s.CustomerID,
		Name:           s.Name,
		Type:           string(s.Type),
		Status:         string(s.Status),
		Currency:       s.Balance.Currency().String(),
		Balance:        s.Balance.Amount(),
		MinimumBalance: nullAmount(s.MinimumBalance),
		DailyLimit:     nullAmount(s.DailyLimit),
		OpenedAt:       s.OpenedAt,
		Version:        version,
	}
	if !s.LastTransactionAt.IsZero() {
		at := s.LastTransactionAt
		row.LastTransactionAt = &at
	}
	return row
}

func toTransactionModel(tx account.Transaction, position int) Transaction {
	return Transaction{
		ID:                   tx.ID,
		AccountID:            tx.AccountID,
		Position:             position,
		Type:                 string(tx.Type),
		Status:               string(tx.Status),
		Amount:               tx.Amount.Amount(),
		BalanceAfter:         tx.BalanceAfter.Amount(),
		Currency:             tx.Amount.Currency().String(),
		Description:          tx.Description,
		ExternalReference:    tx.ExternalReference,
		RelatedTransactionID: tx.RelatedTransactionID,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
	}
}

func toActivityModel(act account.Activity, position int) Activity {
	return Activity{
		ID:            act.ID,
		AccountID:     act.AccountID,
		Position:      position,
		Type:          string(act.Type),
		Description:   act.Description,
		Amount:        nullAmount(act.Amount),
		BalanceBefore: act.BalanceBefore.Amount(),
		BalanceAfter:  act.BalanceAfter.Amount(),
		Currency:      act.BalanceAfter.Currency().String(),
		Metadata:      act.Metadata,
		CreatedAt:     act.CreatedAt,
	}
}

// toSnapshot rebuilds the aggregate state from rows. Children must already be
// ordered by position.
func toSnapshot(row Account, txs []Transaction, acts []Activity) (account.Snapshot, error) {
	code := money.Code(row.Currency)
	balance, err := toMoney(row.Balance, code)
	if err != nil {
		return account.Snapshot{}, fmt.Errorf("account %s balance: %w", row.ID, err)
	}
	s := account.Snapshot{
		ID:         row.ID,
		Number:     account.Number(row.Number),
		CustomerID: row.CustomerID,
		Name:       row.Name,
		Type:       account.Type(row.Type),
		Status:     account.Status(row.Status),
		Balance:    balance,
		OpenedAt:   row.OpenedAt.UTC(),
		Version:    row.Version,
	}
	if row.LastTransactionAt != nil {
		s.LastTransactionAt = row.LastTransactionAt.UTC()
	}
	if s.MinimumBalance, err = toNullMoney(row.MinimumBalance, code); err != nil {
		return account.Snapshot{}, fmt.Errorf("account %s minimum balance: %w", row.ID, err)
	}
	if s.DailyLimit, err = toNullMoney(row.DailyLimit, code); err != nil {
		return account.Snapshot{}, fmt.Errorf("account %s daily limit: %w", row.ID, err)
	}

	s.Transactions = make([]account.Transaction, 0, len(txs))
	for _, t := range txs {
		tx, err := fromTransactionModel(t)
		if err != nil {
			return account.Snapshot{}, err
		}
		s.Transactions = append(s.Transactions, tx)
	}
	s.Activities = make([]account.Activity, 0, len(acts))
	for _, a := range acts {
		act, err := fromActivityModel(a)
		if err != nil {
			return account.Snapshot{}, err
		}
		s.Activities = append(s.Activities, act)
	}
	return s, nil
}

func fromTransactionModel(row Transaction) (account.Transaction, error) {
	code := money.Code(row.Currency)
	amount, err := toMoney(row.Amount, code)
	if err != nil {
		return account.Transaction{}, fmt.Errorf("transaction %s amount: %w", row.ID, err)
	}
	after, err := toMoney(row.BalanceAfter, code)
	if err != nil {
		return account.Transaction{}, fmt.Errorf("transaction %s balance: %w", row.ID, err)
	}
	return account.Transaction{
		ID:                   row.ID,
		AccountID:            row.AccountID,
		Type:                 account.TransactionType(row.Type),
		Status:               account.TransactionStatus(row.Status),
		Amount:               amount,
		BalanceAfter:         after,
		Description:          row.Description,
		ExternalReference:    row.ExternalReference,
		RelatedTransactionID: row.RelatedTransactionID,
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}, nil
}

func fromActivityModel(row Activity) (account.Activity, error) {
	code := money.Code(row.Currency)
	before, err := toMoney(row.BalanceBefore, code)
	if err != nil {
		return account.Activity{}, fmt.Errorf("activity %s: %w", row.ID, err)
	}
	after, err := toMoney(row.BalanceAfter, code)
	if err != nil {
		return account.Activity{}, fmt.Errorf("activity %s: %w", row.ID, err)
	}
	amount, err := toNullMoney(row.Amount, code)
	if err != nil {
		return account.Activity{}, fmt.Errorf("activity %s: %w", row.ID, err)
	}
	return account.Activity{
		ID:            row.ID,
		AccountID:     row.AccountID,
		Type:          account.ActivityType(row.Type),
		Description:   row.Description,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Metadata:      row.Metadata,
		CreatedAt:     row.CreatedAt.UTC(),
	}, nil
}

// toMoney rounds to the currency precision first: numeric columns come back
// with the column scale, sqlite ones as floats.
func toMoney(d decimal.Decimal, code money.Code) (money.Money, error) {
	return money.New(d.Round(code.Decimals()), code)
}

func toNullMoney(d decimal.NullDecimal, code money.Code) (*money.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := toMoney(d.Decimal, code)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func nullAmount(m *money.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Amount(), Valid: true}
}

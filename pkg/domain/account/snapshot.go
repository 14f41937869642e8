package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// Snapshot is the persisted state of an account. Stores map it to and from
// their own models; it carries no pending events.
type Snapshot struct {
	ID                uuid.UUID
	Number            Number
	CustomerID        uuid.UUID
	Name              string
	Type              Type
	Status            Status
	Balance           money.Money
	MinimumBalance    *money.Money
	DailyLimit        *money.Money
	OpenedAt          time.Time
	LastTransactionAt time.Time
	Transactions      []Transaction
	Activities        []Activity
	Version           int64
}

// Snapshot captures the current state.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ID:                a.id,
		Number:            a.number,
		CustomerID:        a.customerID,
		Name:              a.name,
		Type:              a.accountType,
		Status:            a.status,
		Balance:           a.balance,
		MinimumBalance:    copyMoney(a.minimumBalance),
		DailyLimit:        copyMoney(a.dailyLimit),
		OpenedAt:          a.openedAt,
		LastTransactionAt: a.lastTransactionAt,
		Transactions:      a.Transactions(),
		Activities:        a.Activities(),
		Version:           a.version,
	}
}

// Restore rebuilds an account from a snapshot without queuing events. It
// rejects snapshots that break the aggregate invariants. Only WithClock is
// meaningful among opts.
func Restore(s Snapshot, opts ...Option) (*Account, error) {
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("restore account %s: %w", s.ID, err)
	}
	a := &Account{now: defaultClock}
	for _, opt := range opts {
		opt(a)
	}
	a.id = s.ID
	a.number = s.Number
	a.customerID = s.CustomerID
	a.name = s.Name
	a.accountType = s.Type
	a.status = s.Status
	a.balance = s.Balance
	a.minimumBalance = copyMoney(s.MinimumBalance)
	a.dailyLimit = copyMoney(s.DailyLimit)
	a.openedAt = s.OpenedAt.UTC()
	a.lastTransactionAt = s.LastTransactionAt.UTC()
	a.version = s.Version

	a.transactions = make([]Transaction, len(s.Transactions))
	for i, tx := range s.Transactions {
		a.transactions[i] = tx.clone()
	}
	a.activities = make([]Activity, len(s.Activities))
	for i, act := range s.Activities {
		a.activities[i] = act.clone()
	}
	return a, nil
}

func (s Snapshot) validate() error {
	if s.ID == uuid.Nil || s.CustomerID == uuid.Nil {
		return domain.InvalidInputf("account and customer ids are required")
	}
	if !s.Type.IsValid() {
		return domain.InvalidInputf("unknown account type %q", s.Type)
	}
	if _, err := ParseNumber(string(s.Number)); err != nil {
		return err
	}
	if s.Number.Type() != s.Type {
		return domain.InvalidInputf("account number %s does not belong to a %s account", s.Number, s.Type)
	}
	if !s.Status.IsValid() {
		return domain.InvalidInputf("unknown account status %q", s.Status)
	}
	if !s.Balance.IsValid() {
		return domain.InvalidInputf("balance %s is not valid", s.Balance)
	}
	currency := s.Balance.Currency()
	for _, limit := range []*money.Money{s.MinimumBalance, s.DailyLimit} {
		if limit != nil && limit.Currency() != currency {
			return fmt.Errorf("%w: limit in %s, account in %s", domain.ErrCurrencyMismatch, limit.Currency(), currency)
		}
	}
	for _, tx := range s.Transactions {
		if tx.AccountID != s.ID {
			return domain.InvalidInputf("transaction %s belongs to account %s", tx.ID, tx.AccountID)
		}
		if !tx.Type.IsValid() || !tx.Status.IsValid() {
			return domain.InvalidInputf("transaction %s has type %q status %q", tx.ID, tx.Type, tx.Status)
		}
		if tx.Amount.Currency() != currency {
			return fmt.Errorf("%w: transaction %s in %s", domain.ErrCurrencyMismatch, tx.ID, tx.Amount.Currency())
		}
	}
	for _, act := range s.Activities {
		if act.AccountID != s.ID {
			return domain.InvalidInputf("activity %s belongs to account %s", act.ID, act.AccountID)
		}
	}
	return nil
}

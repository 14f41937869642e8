// Package account implements the Account aggregate: balance, limits and status
// with the ledger and audit trail every operation produces.
//
// An Account is not safe for concurrent use. The application layer serializes
// operations per account id, persists the aggregate, then drains its events
// with PullEvents exactly once.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/domain/rules"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// Account is the aggregate root for a customer account.
//
// Invariants:
//   - The balance is never negative and its currency never changes.
//   - Status only changes through Freeze, Unfreeze and Close.
//   - Every posting appends exactly one Transaction and queues exactly one event.
//   - A failed operation leaves the account untouched.
type Account struct {
	id                uuid.UUID
	number            Number
	customerID        uuid.UUID
	name              string
	accountType       Type
	status            Status
	balance           money.Money
	minimumBalance    *money.Money
	dailyLimit        *money.Money
	openedAt          time.Time
	lastTransactionAt time.Time
	transactions      []Transaction
	activities        []Activity
	events            []events.Event
	version           int64
	now               func() time.Time
}

// Option configures an account at creation or restore time.
type Option func(*Account)

// WithMinimumBalance sets a floor the available balance is computed against.
func WithMinimumBalance(m money.Money) Option {
	return func(a *Account) { a.minimumBalance = &m }
}

// WithDailyLimit caps the sum of today's debits.
func WithDailyLimit(m money.Money) Option {
	return func(a *Account) { a.dailyLimit = &m }
}

// WithClock replaces time.Now. Timestamps are always stored in UTC.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = func() time.Time { return now().UTC() }
		}
	}
}

// WithID sets the account id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(a *Account) { a.id = id }
}

func defaultClock() time.Time { return time.Now().UTC() }

// Create opens a new Active account. The currency of initial becomes the
// account currency. One AccountCreated event is queued.
func Create(
	number Number,
	customerID uuid.UUID,
	name string,
	typ Type,
	initial money.Money,
	opts ...Option,
) (*Account, error) {
	a := &Account{
		id:  uuid.New(),
		now: defaultClock,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := rules.AccountCreation(rules.CreationInput{
		Name:           name,
		TypeName:       string(typ),
		TypeValid:      typ.IsValid(),
		Policy:         typ.OpeningPolicy(),
		InitialBalance: initial,
		MinimumBalance: a.minimumBalance,
		DailyLimit:     a.dailyLimit,
	}).Err(); err != nil {
		return nil, err
	}
	if _, err := ParseNumber(string(number)); err != nil {
		return nil, err
	}
	if number.Type() != typ {
		return nil, domain.InvalidInputf("account number %s does not belong to a %s account", number, typ)
	}
	if customerID == uuid.Nil {
		return nil, domain.InvalidInputf("customer id is required")
	}
	if a.id == uuid.Nil {
		return nil, domain.InvalidInputf("account id must not be nil")
	}

	a.number = number
	a.customerID = customerID
	a.name = strings.TrimSpace(name)
	a.accountType = typ
	a.status = StatusActive
	a.balance = initial
	a.openedAt = a.now()
	a.transactions = []Transaction{}
	a.activities = []Activity{}

	a.raise(events.AccountCreated{
		Meta:           a.meta(),
		AccountNumber:  number.String(),
		CustomerID:     customerID,
		Name:           a.name,
		AccountType:    typ.String(),
		InitialBalance: initial,
		MinimumBalance: copyMoney(a.minimumBalance),
		DailyLimit:     copyMoney(a.dailyLimit),
	})
	return a, nil
}

func (a *Account) ID() uuid.UUID         { return a.id }
func (a *Account) Number() Number        { return a.number }
func (a *Account) CustomerID() uuid.UUID { return a.customerID }
func (a *Account) Name() string          { return a.name }
func (a *Account) Type() Type            { return a.accountType }
func (a *Account) Status() Status        { return a.status }
func (a *Account) Balance() money.Money  { return a.balance }
func (a *Account) Currency() money.Code  { return a.balance.Currency() }
func (a *Account) OpenedAt() time.Time   { return a.openedAt }
func (a *Account) IsActive() bool        { return a.status == StatusActive }

// LastTransactionAt is zero until the first posting.
func (a *Account) LastTransactionAt() time.Time { return a.lastTransactionAt }

// MinimumBalance returns nil when no floor is configured.
func (a *Account) MinimumBalance() *money.Money { return copyMoney(a.minimumBalance) }

// DailyLimit returns nil when debits are unlimited.
func (a *Account) DailyLimit() *money.Money { return copyMoney(a.dailyLimit) }

// Transactions returns a copy of the ledger, oldest first.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	for i, tx := range a.transactions {
		out[i] = tx.clone()
	}
	return out
}

// Transaction looks a ledger entry up by id.
func (a *Account) Transaction(id uuid.UUID) (Transaction, bool) {
	i := a.transactionIndex(id)
	if i < 0 {
		return Transaction{}, false
	}
	return a.transactions[i].clone(), true
}

// Activities returns a copy of the audit trail, oldest first.
func (a *Account) Activities() []Activity {
	out := make([]Activity, len(a.activities))
	for i, act := range a.activities {
		out[i] = act.clone()
	}
	return out
}

// Version is the persisted version the aggregate was loaded at, 0 for a new account.
func (a *Account) Version() int64 { return a.version }

// SetVersion records the version a store persisted the aggregate at.
func (a *Account) SetVersion(v int64) { a.version = v }

// PendingEvents returns the queued events without draining them.
func (a *Account) PendingEvents() []events.Event {
	return append([]events.Event(nil), a.events...)
}

// PullEvents drains the queued events. Call it once, after a successful save.
func (a *Account) PullEvents() []events.Event {
	out := a.events
	a.events = nil
	return out
}

func (a *Account) raise(e events.Event) {
	a.events = append(a.events, e)
}

func (a *Account) meta() events.Meta {
	return events.NewMeta(a.id, a.now())
}

func (a *Account) transactionIndex(id uuid.UUID) int {
	for i := range a.transactions {
		if a.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (a *Account) inFlightCount() int {
	n := 0
	for _, tx := range a.transactions {
		if tx.Status.InFlight() {
			n++
		}
	}
	return n
}

func (a *Account) String() string {
	return fmt.Sprintf("Account(%s %s %s %s)", a.number, a.accountType, a.status, a.balance)
}

func copyMoney(m *money.Money) *money.Money {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Package events defines the domain events the account aggregate queues.
//
// Events are plain values; the aggregate never publishes them itself. The
// application layer drains them after a successful save and hands them to a
// dispatcher.
package events

import (
	"time"

	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
)

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeAccountCreated     EventType = "Account.Created"
	EventTypeAccountNameUpdated EventType = "Account.NameUpdated"
	EventTypeAccountFrozen      EventType = "Account.Frozen"
	EventTypeAccountUnfrozen    EventType = "Account.Unfrozen"
	EventTypeAccountClosed      EventType = "Account.Closed"

	EventTypeMoneyDeposited   EventType = "Money.Deposited"
	EventTypeMoneyWithdrawn   EventType = "Money.Withdrawn"
	EventTypeMoneyTransferred EventType = "Money.Transferred"
	EventTypeFeeCharged       EventType = "Fee.Charged"
	EventTypeInterestCredited EventType = "Interest.Credited"
	EventTypeDepositScheduled EventType = "Deposit.Scheduled"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// Event is implemented by every domain event.
type Event interface {
	Type() string
	EventID() uuid.UUID
	AggregateID() uuid.UUID
	OccurredOn() time.Time
}

// Meta is embedded in every event.
type Meta struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMeta stamps a fresh event id.
func NewMeta(accountID uuid.UUID, at time.Time) Meta {
	return Meta{ID: uuid.New(), AccountID: accountID, OccurredAt: at.UTC()}
}

func (m Meta) EventID() uuid.UUID     { return m.ID }
func (m Meta) AggregateID() uuid.UUID { return m.AccountID }
func (m Meta) OccurredOn() time.Time  { return m.OccurredAt }

// AccountCreated is emitted once when an account is opened.
type AccountCreated struct {
	Meta
	AccountNumber  string       `json:"account_number"`
	CustomerID     uuid.UUID    `json:"customer_id"`
	Name           string       `json:"name"`
	AccountType    string       `json:"account_type"`
	InitialBalance money.Money  `json:"initial_balance"`
	MinimumBalance *money.Money `json:"minimum_balance,omitempty"`
	DailyLimit     *money.Money `json:"daily_limit,omitempty"`
}

// AccountNameUpdated is emitted when the display name changes.
type AccountNameUpdated struct {
	Meta
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// AccountFrozen is emitted when an account is frozen.
type AccountFrozen struct {
	Meta
	Reason string `json:"reason"`
}

// AccountUnfrozen is emitted when a frozen account becomes active again.
type AccountUnfrozen struct {
	Meta
}

// AccountClosed is emitted when an account reaches its terminal state.
type AccountClosed struct {
	Meta
	FinalBalance money.Money `json:"final_balance"`
}

// BalanceChanged is shared by the single-account money events.
type BalanceChanged struct {
	Meta
	TransactionID uuid.UUID   `json:"transaction_id"`
	Amount        money.Money `json:"amount"`
	Balance       money.Money `json:"balance"`
	Description   string      `json:"description,omitempty"`
}

// MoneyDeposited is emitted when funds are credited by a deposit.
type MoneyDeposited struct{ BalanceChanged }

// MoneyWithdrawn is emitted when funds are debited by a withdrawal.
type MoneyWithdrawn struct{ BalanceChanged }

// FeeCharged is emitted when a fee is debited.
type FeeCharged struct{ BalanceChanged }

// InterestCredited is emitted when interest is credited.
type InterestCredited struct{ BalanceChanged }

// DepositScheduled is emitted when a pending deposit is recorded. The balance is
// untouched until the transaction completes.
type DepositScheduled struct {
	Meta
	TransactionID     uuid.UUID   `json:"transaction_id"`
	Amount            money.Money `json:"amount"`
	ExternalReference string      `json:"external_reference,omitempty"`
}

// MoneyTransferred is emitted once per transfer and references both accounts.
// Its AggregateID is the source account.
type MoneyTransferred struct {
	Meta
	FromAccountID     uuid.UUID   `json:"from_account_id"`
	ToAccountID       uuid.UUID   `json:"to_account_id"`
	FromTransactionID uuid.UUID   `json:"from_transaction_id"`
	ToTransactionID   uuid.UUID   `json:"to_transaction_id"`
	Amount            money.Money `json:"amount"`
	FromBalance       money.Money `json:"from_balance"`
	ToBalance         money.Money `json:"to_balance"`
	Description       string      `json:"description,omitempty"`
}

func (e AccountCreated) Type() string     { return EventTypeAccountCreated.String() }
func (e AccountNameUpdated) Type() string { return EventTypeAccountNameUpdated.String() }
func (e AccountFrozen) Type() string      { return EventTypeAccountFrozen.String() }
func (e AccountUnfrozen) Type() string    { return EventTypeAccountUnfrozen.String() }
func (e AccountClosed) Type() string      { return EventTypeAccountClosed.String() }
func (e MoneyDeposited) Type() string     { return EventTypeMoneyDeposited.String() }
func (e MoneyWithdrawn) Type() string     { return EventTypeMoneyWithdrawn.String() }
func (e FeeCharged) Type() string         { return EventTypeFeeCharged.String() }
func (e InterestCredited) Type() string   { return EventTypeInterestCredited.String() }
func (e DepositScheduled) Type() string   { return EventTypeDepositScheduled.String() }
func (e MoneyTransferred) Type() string   { return EventTypeMoneyTransferred.String() }

package account

import (
	"fmt"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/rules"
	"github.com/shopspring/decimal"
)

// Type is the product an account belongs to. It is fixed at creation.
type Type string

// Account types
const (
	Checking   Type = "Checking"
	Savings    Type = "Savings"
	Investment Type = "Investment"
	Credit     Type = "Credit"
)

var typePrefixes = map[Type]string{
	Checking:   "10",
	Savings:    "20",
	Investment: "30",
	Credit:     "40",
}

// ParseType returns the Type named s.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", domain.InvalidInputf("unknown account type %q", s)
	}
	return t, nil
}

// IsValid reports whether t is one of the four account types.
func (t Type) IsValid() bool {
	_, ok := typePrefixes[t]
	return ok
}

// Prefix returns the two digits account numbers of this type start with.
func (t Type) Prefix() string {
	return typePrefixes[t]
}

// OpeningPolicy returns the initial balance requirement for the type.
func (t Type) OpeningPolicy() rules.OpeningPolicy {
	switch t {
	case Savings:
		return rules.OpeningPolicy{Minimum: decimal.NewFromInt(100)}
	case Investment:
		return rules.OpeningPolicy{Minimum: decimal.NewFromInt(1000)}
	case Credit:
		return rules.OpeningPolicy{ExactlyZero: true}
	default:
		return rules.OpeningPolicy{Minimum: decimal.Zero}
	}
}

// EarnsInterest reports whether interest may be credited to accounts of this type.
func (t Type) EarnsInterest() bool {
	return t == Savings || t == Investment
}

func (t Type) String() string { return string(t) }

// Status is the lifecycle state of an account.
type Status string

// Account statuses
const (
	StatusActive Status = "Active"
	StatusFrozen Status = "Frozen"
	StatusClosed Status = "Closed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFrozen, StatusClosed:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// TransactionType classifies a ledger entry. The type carries the direction;
// amounts are always positive.
type TransactionType string

// Transaction types
const (
	TransactionDeposit     TransactionType = "Deposit"
	TransactionWithdrawal  TransactionType = "Withdrawal"
	TransactionTransferIn  TransactionType = "TransferIn"
	TransactionTransferOut TransactionType = "TransferOut"
	TransactionFee         TransactionType = "Fee"
	TransactionInterest    TransactionType = "Interest"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransferIn,
		TransactionTransferOut, TransactionFee, TransactionInterest:
		return true
	}
	return false
}

// IsDebit reports whether the type reduces the balance and counts toward the daily limit.
func (t TransactionType) IsDebit() bool {
	return t == TransactionWithdrawal || t == TransactionTransferOut || t == TransactionFee
}

func (t TransactionType) String() string { return string(t) }

// TransactionStatus is the processing state of a ledger entry.
type TransactionStatus string

// Transaction statuses
const (
	TransactionPending    TransactionStatus = "Pending"
	TransactionProcessing TransactionStatus = "Processing"
	TransactionCompleted  TransactionStatus = "Completed"
	TransactionFailed     TransactionStatus = "Failed"
	TransactionCancelled  TransactionStatus = "Cancelled"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionPending:    {TransactionProcessing, TransactionCancelled},
	TransactionProcessing: {TransactionCompleted, TransactionFailed, TransactionCancelled},
}

// IsValid reports whether s is a known transaction status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionProcessing, TransactionCompleted,
		TransactionFailed, TransactionCancelled:
		return true
	}
	return false
}

// InFlight reports whether the transaction has not reached a final status yet.
func (s TransactionStatus) InFlight() bool {
	return s == TransactionPending || s == TransactionProcessing
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TransactionStatus) String() string { return string(s) }

func checkTransition(from, to TransactionStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: transaction %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

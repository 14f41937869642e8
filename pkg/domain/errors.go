package domain

import (
	"errors"
	"fmt"

	"github.com/amirasaad/corebank/pkg/money"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrInvalidInput is returned for malformed arguments (name length, currency code, non-positive amount).
	ErrInvalidInput = money.ErrInvalidInput
	// ErrCurrencyMismatch is returned when operands of a money operation have different currencies.
	ErrCurrencyMismatch = money.ErrMismatchedCurrencies
	// ErrNotActive is returned when an operation requires an active account.
	ErrNotActive = errors.New("account is not active")
	// ErrInsufficientFunds is returned when the available balance is below the required amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDailyLimitExceeded is returned when a debit would push today's total past the daily limit.
	ErrDailyLimitExceeded = errors.New("daily transaction limit exceeded")
	// ErrClosureNotAllowed is returned when an account cannot be closed yet.
	ErrClosureNotAllowed = errors.New("account closure not allowed")
	// ErrConcurrencyConflict is returned when a save does not match the persisted version.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrAllocationFailed is returned when no unique account number could be generated.
	ErrAllocationFailed = errors.New("account number allocation failed")
	// ErrSameAccount is returned when a transfer names the same account on both sides.
	ErrSameAccount = errors.New("cannot transfer to same account")
	// ErrTypeOrCurrencyMismatch is returned when transfer accounts differ in type or currency.
	ErrTypeOrCurrencyMismatch = errors.New("account type or currency mismatch")
	// ErrInvalidTransition is returned for a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// InvalidInputf builds an ErrInvalidInput naming the violated constraint.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// InsufficientFundsError carries the balances behind an ErrInsufficientFunds.
type InsufficientFundsError struct {
	Available money.Money
	Required  money.Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: available %s, required %s", ErrInsufficientFunds, e.Available, e.Required)
}

// Is makes errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// DailyLimitError carries the totals behind an ErrDailyLimitExceeded.
type DailyLimitError struct {
	Current   money.Money
	Attempted money.Money
	Limit     money.Money
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf(
		"%s: current total %s, attempted %s, limit %s",
		ErrDailyLimitExceeded, e.Current, e.Attempted, e.Limit,
	)
}

// Is makes errors.Is(err, ErrDailyLimitExceeded) match.
func (e *DailyLimitError) Is(target error) bool {
	return target == ErrDailyLimitExceeded
}

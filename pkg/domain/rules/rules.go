// Package rules holds the stateless business rules the account aggregate checks
// before it mutates anything.
//
// Every rule is a pure function over explicit inputs that returns a Result. A Result
// can be used as a boolean (Passed) or as check-and-signal (Err), so the same rule
// serves both queries like HasSufficientBalance and the guards inside Withdraw.
package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/shopspring/decimal"
)

// Rule names
const (
	AccountCreationRule           = "AccountCreationRule"
	AccountNameRule               = "AccountNameRule"
	AccountActiveRule             = "AccountActiveRule"
	CurrencyMatchRule             = "CurrencyMatchRule"
	TransactionAmountPositiveRule = "TransactionAmountPositiveRule"
	SufficientBalanceRule         = "SufficientBalanceRule"
	DailyLimitRule                = "DailyLimitRule"
	ClosureEligibilityRule        = "ClosureEligibilityRule"
	ExternalReferenceRule         = "ExternalReferenceRule"
)

// Name length bounds, counted in runes after trimming.
const (
	MinNameLength = 3
	MaxNameLength = 100
)

// MaxExternalReferenceLength bounds the reference of a scheduled deposit, in runes.
const MaxExternalReferenceLength = 128

// Result is the outcome of evaluating one rule.
type Result struct {
	Rule    string
	Message string
	err     error
}

func pass(rule string) Result {
	return Result{Rule: rule}
}

func fail(rule string, err error) Result {
	return Result{Rule: rule, Message: err.Error(), err: err}
}

// Passed reports whether the rule holds.
func (r Result) Passed() bool {
	return r.err == nil
}

// Err returns nil when the rule holds, or the typed error describing the violation.
func (r Result) Err() error {
	return r.err
}

// Enforce returns the error of the first failing result, in argument order.
func Enforce(results ...Result) error {
	for _, r := range results {
		if !r.Passed() {
			return r.err
		}
	}
	return nil
}

// AccountName checks a display name is non-blank and 3–100 characters long.
func AccountName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fail(AccountNameRule, domain.InvalidInputf("name must not be blank"))
	}
	n := utf8.RuneCountInString(trimmed)
	if n < MinNameLength || n > MaxNameLength {
		return fail(AccountNameRule, domain.InvalidInputf(
			"name must be between %d and %d characters, got %d", MinNameLength, MaxNameLength, n,
		))
	}
	return pass(AccountNameRule)
}

// ExternalReference checks the length of a settlement reference. An empty
// reference is allowed.
func ExternalReference(ref string) Result {
	if n := utf8.RuneCountInString(ref); n > MaxExternalReferenceLength {
		return fail(ExternalReferenceRule, domain.InvalidInputf(
			"external reference must be at most %d characters, got %d", MaxExternalReferenceLength, n,
		))
	}
	return pass(ExternalReferenceRule)
}

// OpeningPolicy describes the initial balance an account type requires.
type OpeningPolicy struct {
	Minimum     decimal.Decimal
	ExactlyZero bool
}

// CreationInput is everything AccountCreation looks at.
type CreationInput struct {
	Name           string
	TypeName       string
	TypeValid      bool
	Policy         OpeningPolicy
	InitialBalance money.Money
	MinimumBalance *money.Money
	DailyLimit     *money.Money
}

// AccountCreation checks the arguments of a new account.
func AccountCreation(in CreationInput) Result {
	if r := AccountName(in.Name); !r.Passed() {
		return fail(AccountCreationRule, r.err)
	}
	if !in.TypeValid {
		return fail(AccountCreationRule, domain.InvalidInputf("unknown account type %q", in.TypeName))
	}
	if !in.InitialBalance.IsValid() {
		return fail(AccountCreationRule, domain.InvalidInputf("initial balance is not a valid amount"))
	}
	initial := in.InitialBalance.Amount()
	if in.Policy.ExactlyZero && !initial.IsZero() {
		return fail(AccountCreationRule, domain.InvalidInputf(
			"%s accounts must open with a zero balance, got %s", in.TypeName, in.InitialBalance,
		))
	}
	if initial.LessThan(in.Policy.Minimum) {
		return fail(AccountCreationRule, domain.InvalidInputf(
			"%s accounts require an initial balance of at least %s %s, got %s",
			in.TypeName, in.Policy.Minimum.StringFixed(in.InitialBalance.Currency().Decimals()),
			in.InitialBalance.Currency(), in.InitialBalance,
		))
	}
	currency := in.InitialBalance.Currency()
	if in.MinimumBalance != nil && in.MinimumBalance.Currency() != currency {
		return fail(AccountCreationRule, fmt.Errorf(
			"%w: minimum balance in %s, account in %s",
			domain.ErrInvalidInput, in.MinimumBalance.Currency(), currency,
		))
	}
	if in.DailyLimit != nil {
		if in.DailyLimit.Currency() != currency {
			return fail(AccountCreationRule, fmt.Errorf(
				"%w: daily limit in %s, account in %s",
				domain.ErrInvalidInput, in.DailyLimit.Currency(), currency,
			))
		}
		if !in.DailyLimit.IsPositive() {
			return fail(AccountCreationRule, domain.InvalidInputf("daily limit must be positive"))
		}
	}
	return pass(AccountCreationRule)
}

// AccountActive checks the account accepts operations.
func AccountActive(active bool, status string) Result {
	if !active {
		return fail(AccountActiveRule, fmt.Errorf("%w: status is %s", domain.ErrNotActive, status))
	}
	return pass(AccountActiveRule)
}

// CurrencyMatch checks amount is denominated in the account currency.
func CurrencyMatch(accountCurrency money.Code, amount money.Money) Result {
	if amount.Currency() != accountCurrency {
		return fail(CurrencyMatchRule, fmt.Errorf(
			"%w: account is in %s, amount is in %s",
			domain.ErrCurrencyMismatch, accountCurrency, amount.Currency(),
		))
	}
	return pass(CurrencyMatchRule)
}

// TransactionAmountPositive checks amount is strictly greater than zero.
func TransactionAmountPositive(amount money.Money) Result {
	if !amount.IsValid() || !amount.IsPositive() {
		return fail(TransactionAmountPositiveRule, domain.InvalidInputf(
			"transaction amount must be positive, got %s", amount,
		))
	}
	return pass(TransactionAmountPositiveRule)
}

// SufficientBalance checks available covers required.
func SufficientBalance(available, required money.Money) Result {
	ok, err := available.GreaterOrEqual(required)
	if err != nil {
		return fail(SufficientBalanceRule, err)
	}
	if !ok {
		return fail(SufficientBalanceRule, &domain.InsufficientFundsError{
			Available: available,
			Required:  required,
		})
	}
	return pass(SufficientBalanceRule)
}

// DailyLimit checks todayTotal + attempted stays within limit. A nil limit always passes.
func DailyLimit(todayTotal, attempted money.Money, limit *money.Money) Result {
	if limit == nil {
		return pass(DailyLimitRule)
	}
	projected, err := todayTotal.Add(attempted)
	if err != nil {
		return fail(DailyLimitRule, err)
	}
	within, err := projected.LessOrEqual(*limit)
	if err != nil {
		return fail(DailyLimitRule, err)
	}
	if !within {
		return fail(DailyLimitRule, &domain.DailyLimitError{
			Current:   todayTotal,
			Attempted: attempted,
			Limit:     *limit,
		})
	}
	return pass(DailyLimitRule)
}

// ClosureEligibility checks an account has nothing in flight and a zero
// balance. With a minimum balance set, a residual balance at or below that
// floor is also accepted.
func ClosureEligibility(balance money.Money, minimum *money.Money, pendingTransactions int) Result {
	if !balance.IsZero() {
		residual := false
		if minimum != nil {
			le, err := balance.LessOrEqual(*minimum)
			if err != nil {
				return fail(ClosureEligibilityRule, fmt.Errorf("%w: %w", domain.ErrClosureNotAllowed, err))
			}
			residual = le
		}
		if !residual {
			if minimum != nil {
				return fail(ClosureEligibilityRule, fmt.Errorf(
					"%w: balance is %s, must be zero or at most the minimum balance %s",
					domain.ErrClosureNotAllowed, balance, *minimum,
				))
			}
			return fail(ClosureEligibilityRule, fmt.Errorf(
				"%w: balance is %s, must be zero", domain.ErrClosureNotAllowed, balance,
			))
		}
	}
	if pendingTransactions > 0 {
		return fail(ClosureEligibilityRule, fmt.Errorf(
			"%w: %d pending transaction(s)", domain.ErrClosureNotAllowed, pendingTransactions,
		))
	}
	return pass(ClosureEligibilityRule)
}

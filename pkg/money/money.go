// Package money provides functionality for handling monetary values.
//
// It is a value object that represents a monetary value in a specific currency.
// Invariants:
//   - Amount is a decimal that is never negative.
//   - Amount never carries more fractional digits than its currency allows.
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - All arithmetic and comparison operations require matching currencies.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a specific currency.
// The zero value is not a valid Money; use New, Parse or Zero.
type Money struct {
	amount   decimal.Decimal
	currency Code
}

// New creates a new Money value object with the given amount and currency.
// Invariants enforced:
//   - Currency must be valid.
//   - Amount must not be negative.
//   - Amount must not have more decimal places than allowed by the currency.
func New(amount decimal.Decimal, currency Code) (Money, error) {
	if !currency.IsValid() {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, string(currency))
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}
	places := currency.Decimals()
	if !amount.Equal(amount.Truncate(places)) {
		return Money{}, fmt.Errorf(
			"%w: %s has more than %d decimal places for %s",
			ErrInvalidAmount, amount, places, currency,
		)
	}
	return Money{amount: amount.Truncate(places), currency: currency}, nil
}

// Parse creates Money from a decimal string such as "100.50".
func Parse(amount string, currency Code) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return New(d, currency)
}

// Must creates Money from a decimal string and panics on error.
// It is meant for fixtures and tests.
func Must(amount string, currency Code) Money {
	m, err := Parse(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q, %q): %v", amount, currency, err))
	}
	return m
}

// Zero creates a Money object with zero amount in the specified currency.
func Zero(currency Code) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code of the Money object.
func (m Money) Currency() Code {
	return m.currency
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsValid reports whether m was built through a constructor.
func (m Money) IsValid() bool {
	return m.currency.IsValid() && !m.amount.IsNegative()
}

// SameCurrency checks if both values share a currency.
func (m Money) SameCurrency(other Money) bool {
	return m.currency == other.currency
}

func (m Money) checkCurrency(op string, other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf(
			"%w: cannot %s %s and %s",
			ErrMismatchedCurrencies, op, m.currency, other.currency,
		)
	}
	return nil
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency("add", other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of both amounts. Unlike raw arithmetic it never
// produces a negative value: a result below zero fails with ErrNegativeAmount.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkCurrency("subtract", other); err != nil {
		return Money{}, err
	}
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, m, other)
	}
	return Money{amount: diff, currency: m.currency}, nil
}

// Multiply multiplies the amount by a non-negative scalar and rounds the result to
// the currency precision (half away from zero).
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, ErrInvalidFactor
	}
	return Money{
		amount:   m.amount.Mul(factor).Round(m.currency.Decimals()),
		currency: m.currency,
	}, nil
}

// Equals checks if both values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThan checks if m is greater than other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterOrEqual checks if m is greater than or equal to other.
func (m Money) GreaterOrEqual(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// LessThan checks if m is less than other.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// LessOrEqual checks if m is less than or equal to other.
func (m Money) LessOrEqual(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.LessThanOrEqual(other.amount), nil
}

// String returns a string representation such as "100.50 TRY".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(m.currency.Decimals()), m.currency)
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON implements json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.amount.StringFixed(m.currency.Decimals()),
		Currency: string(m.currency),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux moneyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parsed, err := Parse(aux.Amount, Code(aux.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

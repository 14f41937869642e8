package money

import (
	"errors"
	"fmt"
)

// Common money package errors
var (
	// ErrInvalidInput is the root of every construction error in this package.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount is returned when an amount is negative or carries more
	// fractional digits than its currency allows.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalidInput)

	// ErrInvalidCurrency is returned when a currency code is not three uppercase letters.
	ErrInvalidCurrency = fmt.Errorf("%w: invalid currency code", ErrInvalidInput)

	// ErrInvalidFactor is returned when Multiply receives a negative scalar.
	ErrInvalidFactor = fmt.Errorf("%w: factor cannot be negative", ErrInvalidInput)

	// ErrMismatchedCurrencies is returned when performing operations on money with
	// different currencies
	ErrMismatchedCurrencies = errors.New("currency mismatch")

	// ErrNegativeAmount is returned when an operation would result in a negative amount
	ErrNegativeAmount = errors.New("resulting amount cannot be negative")
)

package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when an amount string is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when an amount is below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrTooManyDecimals is returned when an amount is more precise than the
	// currency's minor unit.
	ErrTooManyDecimals = errors.New("amount has more decimal places than allowed by the currency")

	// ErrAmountExceedsMaxSafeInt is returned when an amount is above MaxAmount
	// minor units.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

	// ErrInvalidCurrency is returned for malformed currency codes or decimals.
	ErrInvalidCurrency = errors.New("invalid currency code")
)

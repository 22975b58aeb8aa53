// Package types provides common numeric aliases for the domain layer.
// All bookkeeping (quantities, rates, amounts) is done in decimal arithmetic.
package types

import (
	"github.com/shopspring/decimal"
)

// Amount is a monetary value with full decimal precision.
type Amount = decimal.Decimal

// Quantity is a stock quantity with full decimal precision.
// Quantities are stored in base units; unit conversion happens before posting.
type Quantity = decimal.Decimal

// Zero is the shared decimal zero.
var Zero = decimal.Zero

// One is the shared decimal one (identity unit-conversion factor).
var One = decimal.NewFromInt(1)

// FromInt builds a decimal from an integer.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromString parses a decimal string; preferred for exact values.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal string, panics on error. For constants
// and tests only.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

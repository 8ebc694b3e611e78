package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are persisted as integer cents.
const centsExp = 2

// MaxAmount is the largest rent, payment or bill amount accepted. It keeps
// cent values, and sums of many of them, well inside int64.
var MaxAmount = decimal.NewFromInt(1_000_000_000)

// Cents converts an amount to integer cents, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Round(centsExp).Shift(centsExp).IntPart()
}

// FromCents converts stored cents back to an amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -centsExp)
}

// CheckAmount returns a ValidationError unless d is at least one cent
// after rounding and no more than MaxAmount.
func CheckAmount(field string, d decimal.Decimal) error {
	if !validAmount(d) {
		return NewValidationError(field, amountMessage)
	}
	return nil
}

var amountMessage = fmt.Sprintf("must be between 0.01 and %s", MaxAmount.StringFixed(centsExp))

// validAmount reports whether d is stored as a positive number of cents
// without exceeding MaxAmount.
func validAmount(d decimal.Decimal) bool {
	if d.GreaterThan(MaxAmount) {
		return false
	}
	return Cents(d) > 0
}

// validAmountPart allows zero, for optional components such as the rent
// and utility parts of a payment.
func validAmountPart(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(MaxAmount)
}

// ParseAmount parses user input such as "8000", "8,000.50" or "₱8000"
// into an amount. Non-numeric input is reported as a ValidationError on field.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₱")
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, NewValidationError(field, "is required")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, NewValidationError(field, "must be a number")
	}
	return d, nil
}

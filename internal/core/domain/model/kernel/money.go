package kernel

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits an amount may carry.
const moneyScale = 2

// ZeroMoney is the additive identity. It is also what the zero value of Money holds.
var ZeroMoney = Money{}

// Money is a non-negative amount with at most two fractional digits. Sums and products are
// rounded half-to-even.
//
// Unlike the identifiers, the zero value of Money is a valid amount (0.00).
//
// Example:
//
//	price, _ := kernel.MoneyFromString("5.00")
//	subtotal := price.Multiply(2)
//	total := subtotal.Add(kernel.ZeroMoney)
//	fmt.Println(total) // 10.00
type Money struct {
	amount decimal.Decimal
}

// NewMoney rejects negative values and values with significant digits beyond two places.
// Trailing zeros are fine: 5.000 is 5.00, 5.004 is an error.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), moneyScale),
		)
	}
	return Money{amount: amount.Truncate(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "13.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", errors.Join(err, fmt.Errorf("%q is not a decimal", s)))
	}
	return NewMoney(d)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).RoundBank(moneyScale)}
}

// Multiply returns m * quantity. Callers guarantee a non-negative quantity.
func (m Money) Multiply(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).RoundBank(moneyScale)}
}

func (m Money) IsGreaterThanZero() bool {
	return m.amount.IsPositive()
}

// IsEqual compares by value, so 10.0 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String always renders two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

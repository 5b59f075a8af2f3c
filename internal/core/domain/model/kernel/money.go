package kernel

import (
	"fmt"

	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assigned to an item price when the caller
// does not supply one.
const DefaultCurrency = "EUR"

// currencyCodeLength is the length of an ISO 4217 alphabetic currency code.
const currencyCodeLength = 3

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney. This ensures all monetary values are validated.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a value object representing a positive monetary amount in a
// single currency. Amounts are held as exact decimals so that storage
// round-trips never accumulate floating point error; the wire projection
// converts to a numeric amount at the edge.
//
// Money follows these invariants:
//   - Amount is strictly positive
//   - Currency is a three-letter ISO code, stored upper-case
//   - Can only be created through the NewMoney constructor
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount and a currency code.
// An empty currency defaults to DefaultCurrency. Returns a validation error
// when the amount is not strictly positive or the currency code is not three
// letters.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !amount.IsPositive() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != currencyCodeLength {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter ISO code", currency))
	}

	upper := make([]byte, currencyCodeLength)
	for i := 0; i < currencyCodeLength; i++ {
		c := currency[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q is not a three-letter ISO code", currency))
		}
		upper[i] = c
	}

	return Money{
		amount:   amount,
		currency: string(upper),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromFloat creates a Money value from a float amount as received on
// the wire, rounding to two decimal places.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount).Round(2), currency)
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// AmountFloat returns the amount as a float64 for the wire projection.
func (m Money) AmountFloat() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Currency returns the upper-case ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a "10.99 EUR" style representation.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount, m.currency)
}

// Validate ensures the Money instance was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

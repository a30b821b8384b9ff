package num

import (
	"github.com/shopspring/decimal"
)

// Decimal is used only at the edges (logging, test fixtures, fee-factor
// configuration) — never in the settlement value path, which stays on Uint.
type Decimal = decimal.Decimal

func DecimalFromUint(u *Uint) Decimal {
	return decimal.NewFromBigInt(u.BigInt(), 0)
}

func DecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}

func MustDecimalFromString(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func DecimalZero() Decimal { return decimal.Zero }

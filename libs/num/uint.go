// Package num provides the exact-arithmetic primitives the matching core
// is built on: a 256-bit unsigned integer (wrapping github.com/holiman/uint256
// so intermediate products of two 64-bit amounts never overflow) and a
// Decimal alias for human-facing ratios. No floating point is used anywhere
// in this package.
package num

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Uint is a wrapper around a 256-bit unsigned integer.
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint from a uint64.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero is a convenience for NewUint(0).
func UintZero() *Uint {
	return NewUint(0)
}

// Min returns the smaller of a and b.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b *Uint) *Uint {
	if a.GT(b) {
		return a
	}
	return b
}

// UintFromBig constructs a Uint from a big.Int. overflow is true if the
// value overflowed 256 bits.
func UintFromBig(b *big.Int) (val *Uint, overflow bool) {
	u, of := uint256.FromBig(b)
	if of {
		return UintZero(), true
	}
	return &Uint{*u}, false
}

// Sum is equivalent to NewUint(0).AddSum(vals...).
func Sum(vals ...*Uint) *Uint {
	return UintZero().AddSum(vals...)
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z *Uint) SetUint64(val uint64) *Uint {
	z.u.SetUint64(val)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

// Add sets z = x + y and returns z.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddSum adds every value in vals into z, i.e. z += vals[0] + vals[1] + ...
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.u.Add(&z.u, &x.u)
	}
	return z
}

// Sub sets z = x - y and returns z. Underflow wraps per uint256 semantics;
// Sub itself does no check, so callers must not subtract past zero.
func (z *Uint) Sub(x, y *Uint) *Uint {
	z.u.Sub(&x.u, &y.u)
	return z
}

// Delta returns |x-y| and whether x < y (i.e. whether the subtraction had
// to be flipped to stay within the unsigned range).
func (z *Uint) Delta(x, y *Uint) (result *Uint, xLessThanY bool) {
	if y.GT(x) {
		z.Sub(y, x)
		return z, true
	}
	z.Sub(x, y)
	return z, false
}

// Mul sets z = x * y using the full 256-bit intermediate and returns z.
func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

// Div sets z = x / y (truncated toward zero, the only direction that makes
// sense for an unsigned type) and returns z.
func (z *Uint) Div(x, y *Uint) *Uint {
	z.u.Div(&x.u, &y.u)
	return z
}

// DivCeil sets z = ceil(x / y) and returns z.
func (z *Uint) DivCeil(x, y *Uint) *Uint {
	q := new(uint256.Int).Div(&x.u, &y.u)
	r := new(uint256.Int).Mod(&x.u, &y.u)
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	z.u = *q
	return z
}

func (u Uint) LT(oth *Uint) bool  { return u.u.Lt(&oth.u) }
func (u Uint) LTE(oth *Uint) bool { return u.u.Lt(&oth.u) || u.u.Eq(&oth.u) }
func (u Uint) EQ(oth *Uint) bool  { return u.u.Eq(&oth.u) }
func (u Uint) NEQ(oth *Uint) bool { return !u.u.Eq(&oth.u) }
func (u Uint) GT(oth *Uint) bool  { return u.u.Gt(&oth.u) }
func (u Uint) GTE(oth *Uint) bool { return u.u.Gt(&oth.u) || u.u.Eq(&oth.u) }

func (u Uint) IsZero() bool { return u.u.IsZero() }

// Clone returns a deep copy of u.
func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

func (u Uint) String() string {
	return u.u.ToBig().String()
}

func (u Uint) Format(s fmt.State, ch rune) {
	u.u.Format(s, ch)
}

package types

import "github.com/Freetsh/freetsh-core/libs/num"

// AssetID identifies an asset by its canonical object ID. The reserve
// asset is ID zero by convention.
type AssetID uint64

// ReserveAsset is the native collateral asset every MIA is backed by.
const ReserveAsset AssetID = 0

func (a AssetID) String() string {
	if a == ReserveAsset {
		return "RESERVE"
	}
	return "asset#" + itoa(uint64(a))
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Amount pairs a quantity with the asset it is denominated in.
type Amount struct {
	Value *num.Uint
	Asset AssetID
}

func NewAmount(value uint64, asset AssetID) Amount {
	return Amount{Value: num.NewUint(value), Asset: asset}
}

func (a Amount) IsZero() bool {
	return a.Value == nil || a.Value.IsZero()
}

func (a Amount) Clone() Amount {
	return Amount{Value: a.Value.Clone(), Asset: a.Asset}
}

// Ratio is an exact rational number used for MCR/MSSR and fee percentages,
// always expressed as Numerator/Denominator to avoid floating point in the
// value path.
type Ratio struct {
	Numerator   uint64
	Denominator uint64
}

// NewRatio builds a Ratio, e.g. NewRatio(175, 100) for a 1.75 MCR.
func NewRatio(num, den uint64) Ratio {
	if den == 0 {
		panic("ratio: zero denominator")
	}
	return Ratio{Numerator: num, Denominator: den}
}

// MulCeil returns ceil(amount * r.Numerator / r.Denominator).
func (r Ratio) MulCeil(amount *num.Uint) *num.Uint {
	n := num.UintZero().Mul(amount, num.NewUint(r.Numerator))
	return num.UintZero().DivCeil(n, num.NewUint(r.Denominator))
}

// MulFloor returns floor(amount * r.Numerator / r.Denominator).
func (r Ratio) MulFloor(amount *num.Uint) *num.Uint {
	n := num.UintZero().Mul(amount, num.NewUint(r.Numerator))
	return num.UintZero().Div(n, num.NewUint(r.Denominator))
}

package types

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Freetsh/freetsh-core/libs/num"
)

// ErrPriceAssetMismatch is returned when an asset amount is multiplied by a
// price that does not reference that asset on either side.
var ErrPriceAssetMismatch = errors.New("price: amount asset is not on either side of the price")

// ErrPriceNotComparable is returned when two prices are compared whose
// (base_id, quote_id) asset pairs differ; such prices are not
// comparable.
var ErrPriceNotComparable = errors.New("price: asset pairs are not comparable")

// Price is an exact ratio base/quote: base.Value units of base.Asset are
// considered equivalent to quote.Value units of quote.Asset. It is the
// building block for every conversion and comparison in the matching core
// and is never represented as a float.
type Price struct {
	Base  Amount
	Quote Amount
}

// NewPrice builds a Price from raw amounts.
func NewPrice(baseValue uint64, baseAsset AssetID, quoteValue uint64, quoteAsset AssetID) Price {
	return Price{
		Base:  NewAmount(baseValue, baseAsset),
		Quote: NewAmount(quoteValue, quoteAsset),
	}
}

// Invert returns ~p: base and quote swapped.
func (p Price) Invert() Price {
	return Price{Base: p.Quote, Quote: p.Base}
}

func (p Price) Clone() Price {
	return Price{Base: p.Base.Clone(), Quote: p.Quote.Clone()}
}

// Mul converts an amount denominated in one side of the price into the
// asset on the other side, rounding toward zero, or up (ceiling) when
// roundUp is requested. This is the sole price-conversion entry point in
// the core: every match path calls it to derive the side that is not
// fully consumed, with directed rounding.
func (p Price) Mul(amt *num.Uint, amtAsset AssetID, roundUp bool) (*num.Uint, AssetID, error) {
	var num64, den *num.Uint
	var resultAsset AssetID
	switch amtAsset {
	case p.Base.Asset:
		num64, den, resultAsset = p.Quote.Value, p.Base.Value, p.Quote.Asset
	case p.Quote.Asset:
		num64, den, resultAsset = p.Base.Value, p.Quote.Value, p.Base.Asset
	default:
		return nil, 0, ErrPriceAssetMismatch
	}
	product := num.UintZero().Mul(amt, num64)
	var result *num.Uint
	if roundUp {
		result = num.UintZero().DivCeil(product, den)
	} else {
		result = num.UintZero().Div(product, den)
	}
	return result, resultAsset, nil
}

// samePair reports whether p and q share the same (base,quote) asset
// identities in the same orientation.
func (p Price) samePair(q Price) bool {
	return p.Base.Asset == q.Base.Asset && p.Quote.Asset == q.Quote.Asset
}

// Compare cross-multiplies p and q (never dividing) and returns -1, 0 or
// 1 as p is less than, equal to, or greater than q. Both
// prices must share the same (base,quote) asset pair.
func (p Price) Compare(q Price) (int, error) {
	if !p.samePair(q) {
		return 0, ErrPriceNotComparable
	}
	lhs := num.UintZero().Mul(p.Base.Value, q.Quote.Value)
	rhs := num.UintZero().Mul(q.Base.Value, p.Quote.Value)
	switch {
	case lhs.LT(rhs):
		return -1, nil
	case lhs.GT(rhs):
		return 1, nil
	default:
		return 0, nil
	}
}

func (p Price) LessThan(q Price) bool {
	c, err := p.Compare(q)
	return err == nil && c < 0
}

func (p Price) GreaterThan(q Price) bool {
	c, err := p.Compare(q)
	return err == nil && c > 0
}

// Min returns the smaller of a and b; both must share a (base,quote) pair.
func Min(a, b Price) Price {
	if a.GreaterThan(b) {
		return b
	}
	return a
}

// Max returns the larger of a and b; both must share a (base,quote) pair.
func Max(a, b Price) Price {
	if a.LessThan(b) {
		return b
	}
	return a
}

// PriceMin returns the smallest representable price in the (base/quote)
// direction: the tiniest numerator over the largest possible denominator.
func PriceMin(base, quote AssetID) Price {
	return Price{
		Base:  NewAmount(1, base),
		Quote: Amount{Value: maxUint(), Asset: quote},
	}
}

// PriceMax returns the largest representable price in the (base/quote)
// direction.
func PriceMax(base, quote AssetID) Price {
	return Price{
		Base:  Amount{Value: maxUint(), Asset: base},
		Quote: NewAmount(1, quote),
	}
}

// maxUint128 is 2^128-1: ample headroom for any realistic amount while
// keeping the cross-multiplication in Compare within 256 bits.
var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func maxUint() *num.Uint {
	v, _ := num.UintFromBig(maxUint128)
	return v
}

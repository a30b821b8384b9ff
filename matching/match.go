package matching

import (
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

// Bits of a Match result: bit 0 set means the taker filled, bit 1 set
// means the maker filled. 3 means both filled exactly.
const (
	TakerFilled = 1 << 0
	MakerFilled = 1 << 1
)

// Match computes the exchanged amounts between a taker offering takerAvail
// (in matchPrice.Quote.Asset) and a maker offering makerAvail (in
// matchPrice.Base.Asset), at matchPrice (maker's own price: Base is what
// the maker gives, Quote is what the maker receives). The smaller side (by
// exact cross-multiplied comparison, never division) is fully consumed;
// the other side's amount is derived via matchPrice.
//
// Rounding always rounds the larger side's receipt down from the
// smaller side's exact value, never up: whichever side is fully
// consumed, what the other side gives or receives is computed as
// smaller_amount * match_price, floored.
func (e *Engine) Match(takerAvail, makerAvail types.Amount, matchPrice types.Price) (code int, takerPays, makerPays types.Amount, err error) {
	if takerAvail.Asset != matchPrice.Quote.Asset || makerAvail.Asset != matchPrice.Base.Asset {
		return 0, types.Amount{}, types.Amount{}, types.ErrAssetKindMismatch
	}

	lhs := num.UintZero().Mul(takerAvail.Value, matchPrice.Base.Value)
	rhs := num.UintZero().Mul(makerAvail.Value, matchPrice.Quote.Value)

	if lhs.LTE(rhs) {
		// Taker is the smaller (or exactly equal) side: consumed in full.
		// What the maker pays out is rounded down, favoring the maker.
		paidFromMaker, _, mulErr := matchPrice.Mul(takerAvail.Value, matchPrice.Quote.Asset, false)
		if mulErr != nil {
			return 0, types.Amount{}, types.Amount{}, mulErr
		}
		if paidFromMaker.GT(makerAvail.Value) {
			paidFromMaker = makerAvail.Value.Clone()
		}
		code = TakerFilled
		if paidFromMaker.EQ(makerAvail.Value) {
			code |= MakerFilled
		}
		return code, takerAvail, types.Amount{Value: paidFromMaker, Asset: makerAvail.Asset}, nil
	}

	// Maker is the strictly smaller side: consumed in full. What the
	// taker pays in is rounded down from the maker's exact amount.
	paidToMaker, _, mulErr := matchPrice.Mul(makerAvail.Value, matchPrice.Base.Asset, false)
	if mulErr != nil {
		return 0, types.Amount{}, types.Amount{}, mulErr
	}
	if paidToMaker.GT(takerAvail.Value) {
		paidToMaker = takerAvail.Value.Clone()
	}
	code = MakerFilled
	if paidToMaker.EQ(takerAvail.Value) {
		code |= TakerFilled
	}
	return code, types.Amount{Value: paidToMaker, Asset: takerAvail.Asset}, makerAvail, nil
}

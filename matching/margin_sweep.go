package matching

import (
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// CheckCallOrders sweeps mia's least-collateralized call orders against
// its resting limit book, starting from the highest-paying limit order
// and working down, stopping as soon as either side is no longer willing
// to cross. matched reports whether any fill happened at all; it does not
// report every mutation along the way (an order culled for dust after a
// fill it wasn't itself part of is not "matched", for instance), mirroring
// the legacy "did a margin call execute" semantics rather than a general
// "did anything change" flag.
//
// forNewLimitOrder controls which side is recorded as maker in the
// emitted applied-operation records: true when this sweep runs as part of
// ApplyOrder for an order that has not rested yet (the call is maker),
// false when it runs as a background sweep over an already-resting book
// (the limit order is maker). It does not change the trade economics.
func (e *Engine) CheckCallOrders(mia types.AssetID, forNewLimitOrder bool) (matched bool, err error) {
	defer metrics.NewTimeCounter(mia.String(), "matching", "CheckCallOrders").EngineTimeCounterAdd()

	bit, ok := e.st.GetBitassetData(mia)
	if !ok || bit.Options.IsPredictionMarket || bit.HasSettlement() || !bit.HasFeed {
		return false, nil
	}

	feed := bit.CurrentFeed
	minCallPrice := feed.MaxShortSqueezePrice()

	for {
		call, ok := e.st.LeastCollateralized(mia)
		if !ok {
			return matched, nil
		}
		resting, ok := e.st.TopOfBook(mia, bit.Options.BackingAsset)
		if !ok {
			return matched, nil
		}

		callOrderPrice := call.CallPrice.Invert() // Base=MIA(debt), Quote=backing(collateral)
		if feed.SettlementPrice.GreaterThan(callOrderPrice) {
			// Feed-protected: the least-collateralized position still
			// meets its maintenance requirement at the feed price.
			return matched, nil
		}

		matchPrice := resting.Price
		if matchPrice.LessThan(callOrderPrice) {
			// The best resting bid still isn't good enough to serve as
			// counterparty for this call.
			return matched, nil
		}
		if matchPrice.GreaterThan(minCallPrice) {
			// Selling this cheaply isn't worth calling for even the least
			// collateralized position.
			return matched, nil
		}

		usdToBuy := call.Debt
		collateralNeeded, _, mulErr := matchPrice.Mul(usdToBuy.Value, matchPrice.Base.Asset, false)
		if mulErr != nil {
			return matched, mulErr
		}
		if collateralNeeded.GT(call.Collateral.Value) {
			if !e.cfg.BlackSwanEnabled {
				return matched, types.NewBlackSwanError(mia)
			}
			if err := e.GloballySettle(mia, feed.SettlementPrice); err != nil {
				return matched, err
			}
			return true, nil
		}

		matched = true

		code, debt, collateral, matchErr := matchAgainstCall(resting.SellAmount, usdToBuy, matchPrice)
		if matchErr != nil {
			return matched, matchErr
		}

		callIsMaker := forNewLimitOrder
		if _, err := e.FillLimit(resting, debt, collateral, call.Borrower, e.marketFeeFor(bit.Options.BackingAsset), e.marketFeeCapFor(bit.Options.BackingAsset), !callIsMaker); err != nil {
			return matched, err
		}
		if _, err := e.FillCall(call, collateral, debt, resting.Owner, bit.CurrentFeed.MCR, callIsMaker); err != nil {
			return matched, err
		}

		if code&MakerFilled == 0 && code&TakerFilled == 0 {
			return matched, nil
		}
	}
}

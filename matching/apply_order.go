package matching

import (
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// ApplyOrder matches a freshly-inserted limit order N against the
// opposite-side limit book and, when N is buying a MIA's backing asset
// with that MIA, against the MIA's call orders as well. It returns
// whether N survived to rest on the book.
//
// Call orders are only eligible counterparties when all of:
//  1. N sells a market-issued asset and receives its own backing asset,
//  2. that MIA is not a prediction market,
//  3. that MIA has not already been globally settled,
//  4. that MIA has an active feed.
func (e *Engine) ApplyOrder(order *types.LimitOrder) (rested bool, err error) {
	defer metrics.NewTimeCounter(order.SellAsset().String(), "matching", "ApplyOrder").EngineTimeCounterAdd()

	sell, receive := order.SellAsset(), order.ReceiveAsset()

	if top, ok := e.st.TopOfBook(sell, receive); ok && top.ID != order.ID {
		// N is not at the front of its own side: something more
		// competitive already rests ahead of it, so it cannot be a taker.
		return true, nil
	}

	checkCalls := false
	var bit *types.BitassetData
	if b, ok := e.st.GetBitassetData(sell); ok {
		bit = b
		if bit.Options.BackingAsset == receive && !bit.Options.IsPredictionMarket &&
			!bit.HasSettlement() && bit.HasFeed {
			checkCalls = true
		}
	}

	checkLimits := true

	if checkCalls {
		minCallPrice := bit.CurrentFeed.MaxShortSqueezePrice()
		for checkCalls {
			call, ok := e.st.LeastCollateralized(sell)
			if !ok {
				break
			}
			callPrice := call.CallPrice.Invert() // Base=debt(sell), Quote=collateral(receive)

			if !callPrice.GreaterThan(bit.CurrentFeed.SettlementPrice) {
				// Call has enough collateral at the feed price: no more
				// margin calls are due.
				break
			}
			if callPrice.GreaterThan(minCallPrice) {
				callPrice = minCallPrice // feed protected
			}
			if callPrice.GreaterThan(order.Price) {
				// N is too far away from this call to serve as
				// counterparty.
				break
			}

			if checkLimits {
				// Drain any resting limit orders that are strictly better
				// (from order's perspective) than this margin call before
				// matching the call itself.
				for checkLimits {
					resting, ok := e.st.TopOfBook(receive, sell)
					if !ok {
						checkLimits = false
						break
					}
					if !callPrice.GreaterThan(resting.Price.Invert()) {
						break
					}
					code, matchErr := e.matchTwoLimits(order, resting)
					if matchErr != nil {
						return false, matchErr
					}
					if code&TakerFilled != 0 {
						checkLimits = false
						checkCalls = false
						break
					}
				}
				if !checkCalls {
					break
				}
			}

			code, matchErr := e.matchLimitAgainstCall(order, call, callPrice, bit.CurrentFeed.MCR)
			if matchErr != nil {
				return false, matchErr
			}
			if code&TakerFilled != 0 {
				// N is exhausted: stop entirely.
				checkCalls = false
			}
			// Only the call filled (code == MakerFilled): keep sweeping.
		}
	}

	if checkLimits {
		for {
			resting, ok := e.st.TopOfBook(receive, sell)
			if !ok {
				break
			}
			code, matchErr := e.matchTwoLimits(order, resting)
			if matchErr != nil {
				return false, matchErr
			}
			if code&TakerFilled != 0 {
				break
			}
		}
	}

	if _, ok := e.st.GetLimitOrder(order.ID); !ok {
		return false, nil
	}
	return e.maybeCullSmall(order), nil
}

// matchTwoLimits fills order (taker) against resting (maker) at resting's
// own price, the same generic-Match path used for plain limit-vs-limit
// crossing.
func (e *Engine) matchTwoLimits(order, resting *types.LimitOrder) (int, error) {
	matchPrice := resting.Price
	takerAvail := order.SellAmount
	makerAvail := resting.SellAmount

	code, takerPays, makerPays, err := e.Match(takerAvail, makerAvail, matchPrice)
	if err != nil {
		return 0, err
	}

	if _, err := e.FillLimit(order, takerPays, makerPays, resting.Owner, e.marketFeeFor(order.ReceiveAsset()), e.marketFeeCapFor(order.ReceiveAsset()), false); err != nil {
		return 0, err
	}
	if _, err := e.FillLimit(resting, makerPays, takerPays, order.Owner, e.marketFeeFor(resting.ReceiveAsset()), e.marketFeeCapFor(resting.ReceiveAsset()), true); err != nil {
		return 0, err
	}

	return code, nil
}

// matchLimitAgainstCall fills order (taker, selling the MIA) against call
// (maker) at callPrice, which must already be in order's (sell,receive)
// orientation (Base=MIA, Quote=backing asset).
func (e *Engine) matchLimitAgainstCall(order *types.LimitOrder, call *types.CallOrder, callPrice types.Price, mcr types.Ratio) (int, error) {
	code, debt, collateral, err := matchAgainstCall(order.SellAmount, call.Debt, callPrice)
	if err != nil {
		return 0, err
	}

	if _, err := e.FillLimit(order, debt, collateral, call.Borrower, e.marketFeeFor(order.ReceiveAsset()), e.marketFeeCapFor(order.ReceiveAsset()), false); err != nil {
		return 0, err
	}
	if _, err := e.FillCall(call, collateral, debt, order.Owner, mcr, true); err != nil {
		return 0, err
	}

	return code, nil
}

// marketFeeFor and marketFeeCapFor look up the fee schedule that applies
// to whichever asset a fill credits, falling back to no fee for the
// reserve asset and for assets without bitasset data (nothing charges a
// market fee besides a MIA's own issuer-configured rate).
func (e *Engine) marketFeeFor(asset types.AssetID) types.Ratio {
	if b, ok := e.st.GetBitassetData(asset); ok {
		return b.Options.MarketFeePercent
	}
	return types.Ratio{}
}

func (e *Engine) marketFeeCapFor(asset types.AssetID) *types.AmountCap {
	if b, ok := e.st.GetBitassetData(asset); ok {
		return b.Options.MaxMarketFee
	}
	return nil
}

// maybeCullSmall removes order from the book if what remains of it would
// receive nothing at its own price, refunding it to the owner exactly as
// a user-initiated cancellation would (minus any already-resolved
// deferred fee, which FillLimit has already flushed).
func (e *Engine) maybeCullSmall(order *types.LimitOrder) bool {
	receive, err := order.ReceiveAmountAt(order.SellAmount)
	if err != nil {
		e.log.Error("failed to compute receive amount on cull check", logging.Error(err))
		return true
	}
	if !receive.Value.IsZero() {
		return true
	}
	if err := e.credit(order.Owner, order.SellAmount); err != nil {
		e.log.Error("failed to refund dust order on cull", logging.Error(err))
		return true
	}
	e.st.RemoveLimitOrder(order.ID)
	return false
}

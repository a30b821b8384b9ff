package matching

import (
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// GloballySettle force-closes every open call order against mia at
// settlementPrice: each position pays min(debt*settlementPrice,
// collateral) into a settlement fund, its debt is extinguished, and the
// leftover collateral (if any) is returned to the borrower. Once every
// position is closed, bitasset.SettlementPrice is fixed at
// original_supply/collateral_gathered — a direct lookup, not a further
// application of settlementPrice — so that force-settlements thereafter
// draw down the fund at a rate that exactly exhausts it if the whole
// remaining supply settles. current_supply is written back at its
// pre-close value: positions are closed here directly rather than through
// FillCall, so nothing decrements it, and global settlement does not
// retire supply, only the collateral backing it changes hands.
func (e *Engine) GloballySettle(mia types.AssetID, settlementPrice types.Price) error {
	defer metrics.NewTimeCounter(mia.String(), "matching", "GloballySettle").EngineTimeCounterAdd()

	bit, ok := e.st.GetBitassetData(mia)
	if !ok {
		return types.ErrNotMarketIssued
	}
	if bit.HasSettlement() {
		return types.ErrAlreadySettled
	}

	dyn := e.dynamicData(mia)
	originalSupply := dyn.CurrentSupply.Clone()

	collateralGathered := num.UintZero()
	var closed []types.OrderID
	var iterErr error
	e.st.IterateCallOrders(mia, func(call *types.CallOrder) bool {
		pays, _, mulErr := settlementPrice.Mul(call.Debt.Value, call.Debt.Asset, false)
		if mulErr != nil {
			iterErr = mulErr
			return false
		}
		if pays.GT(call.Collateral.Value) {
			pays = call.Collateral.Value.Clone()
		}
		collateralGathered = num.UintZero().Add(collateralGathered, pays)

		residual := num.UintZero().Sub(call.Collateral.Value, pays)
		if !residual.IsZero() {
			if err := e.credit(call.Borrower, types.Amount{Value: residual, Asset: bit.Options.BackingAsset}); err != nil {
				iterErr = err
				return false
			}
		}

		e.emit(&events.FillOrder{
			OrderID:   call.ID,
			Owner:     call.Borrower,
			Pays:      types.Amount{Value: pays, Asset: bit.Options.BackingAsset},
			Receives:  call.Debt,
			Fee:       types.Amount{Value: num.UintZero(), Asset: mia},
			FillPrice: settlementPrice,
			IsMaker:   true,
		})

		closed = append(closed, call.ID)
		return true
	})
	if iterErr != nil {
		return iterErr
	}
	for _, id := range closed {
		e.st.RemoveCallOrder(id)
	}

	fixed := types.Price{
		Base:  types.Amount{Value: originalSupply, Asset: mia},
		Quote: types.Amount{Value: collateralGathered, Asset: bit.Options.BackingAsset},
	}
	bit.SettlementPrice = &fixed
	bit.SettlementFund = types.Amount{Value: collateralGathered, Asset: bit.Options.BackingAsset}
	e.st.PutBitassetData(bit)

	dyn = e.dynamicData(mia)
	dyn.CurrentSupply = originalSupply
	e.putDynamic(dyn)

	e.log.Warn("black swan: globally settled market-issued asset",
		logging.Uint64("asset", uint64(mia)),
		logging.Uint64("collateral_gathered", collateralGathered.Uint64()))

	return nil
}

// Revive lifts global settlement on mia: a synthetic zero-additional-
// collateral bid for the issuer absorbs whatever supply is still
// outstanding against the settlement fund (creating one call order that
// covers it), every other standing collateral bid is refunded and
// cancelled, and the settlement fields are cleared.
func (e *Engine) Revive(mia types.AssetID, issuer string) error {
	defer metrics.NewTimeCounter(mia.String(), "matching", "Revive").EngineTimeCounterAdd()

	bit, ok := e.st.GetBitassetData(mia)
	if !ok {
		return types.ErrNotMarketIssued
	}
	if !bit.HasSettlement() {
		return types.ErrNotSettled
	}
	if bit.Options.IsPredictionMarket {
		return types.ErrAssetKindMismatch
	}

	dyn := e.dynamicData(mia)
	if dyn.CurrentSupply.IsZero() {
		if !bit.SettlementFund.IsZero() {
			e.log.Panic("settlement fund nonzero with no outstanding supply to revive",
				logging.Uint64("asset", uint64(mia)))
		}
	} else {
		id, _ := e.ids.Next()
		pseudoBid := &types.CollateralBid{
			ID:     id,
			Bidder: issuer,
			Collateral: types.Amount{Value: num.UintZero(), Asset: bit.Options.BackingAsset},
			InvSwanPrice: types.Price{
				Base:  types.Amount{Value: num.UintZero(), Asset: bit.Options.BackingAsset},
				Quote: types.Amount{Value: dyn.CurrentSupply.Clone(), Asset: mia},
			},
		}
		if err := e.executeBid(pseudoBid, dyn.CurrentSupply.Clone(), bit.SettlementFund.Value.Clone(), bit); err != nil {
			return err
		}
	}

	return e.cancelBidsAndRevive(mia, bit)
}

// executeBid creates the call order a collateral bid (real or synthetic)
// funds: its collateral is the bid's own offer plus whatever the
// settlement fund still contributes, and its debt is the amount of
// outstanding supply the bid agreed to cover.
func (e *Engine) executeBid(bid *types.CollateralBid, debtCovered, collateralFromFund *num.Uint, bit *types.BitassetData) error {
	collateral := num.UintZero().Add(bid.Collateral.Value, collateralFromFund)

	call := &types.CallOrder{
		ID:         bid.ID,
		Borrower:   bid.Bidder,
		Debt:       types.Amount{Value: debtCovered, Asset: bid.InvSwanPrice.Quote.Asset},
		Collateral: types.Amount{Value: collateral, Asset: bid.InvSwanPrice.Base.Asset},
	}
	call.RecomputeCallPrice(bit.CurrentFeed.MCR)
	e.st.InsertCallOrder(call)

	e.emit(&events.ExecuteBid{
		BidID:      bid.ID,
		Bidder:     bid.Bidder,
		Collateral: call.Collateral,
		Debt:       call.Debt,
	})

	return nil
}

// cancelBidsAndRevive refunds and removes every standing collateral bid
// for mia, then clears its settlement price and fund so it trades
// normally again.
func (e *Engine) cancelBidsAndRevive(mia types.AssetID, bit *types.BitassetData) error {
	var refundErr error
	e.st.IterateCollateralBids(mia, func(bid *types.CollateralBid) bool {
		if err := e.credit(bid.Bidder, bid.Collateral); err != nil {
			refundErr = err
			return false
		}
		e.emit(&events.BidCollateral{
			BidID:      bid.ID,
			Bidder:     bid.Bidder,
			Collateral: bid.Collateral,
			DebtCovered: types.Amount{Value: num.UintZero(), Asset: bit.Asset},
			Cancelled:  true,
		})
		e.st.RemoveCollateralBid(bid.ID)
		return true
	})
	if refundErr != nil {
		return refundErr
	}

	bit.SettlementPrice = nil
	bit.SettlementFund = types.Amount{Value: num.UintZero(), Asset: bit.Options.BackingAsset}
	e.st.PutBitassetData(bit)
	return nil
}

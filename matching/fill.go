package matching

import (
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/types"
)

// FillLimit applies a single fill to one side of a trade represented by a
// limit order: pays (in order.SellAsset()) is taken from the order's
// remaining sell amount, receives (in order.ReceiveAsset()) is credited
// to the order's owner net of the market fee. taker is not credited
// here: each side of a trade is credited by its own Fill* call. Every
// order pays its own market fee on what it receives, independent of
// whether it is the maker or the taker of the trade; isMaker only
// affects the emitted applied-operation record.
// removed reports whether the order was fully consumed and deleted from
// the store.
func (e *Engine) FillLimit(order *types.LimitOrder, pays, receives types.Amount, taker string, feePercent types.Ratio, feeCap *types.AmountCap, isMaker bool) (bool, error) {
	if order.SellAsset() != pays.Asset {
		return false, types.ErrAssetKindMismatch
	}
	if pays.Value.GT(order.SellAmount.Value) {
		e.log.Panic("fill exceeds resting limit order's remaining sell amount",
			logging.Uint64("order", uint64(order.ID)))
	}

	marketFee := e.fee.MarketFee(receives, feePercent, feeCap)
	netReceive, _ := num.UintZero().Delta(receives.Value, marketFee)

	if err := e.credit(order.Owner, types.Amount{Value: netReceive, Asset: receives.Asset}); err != nil {
		return false, err
	}
	if !marketFee.IsZero() {
		dyn := e.dynamicData(receives.Asset)
		e.fee.ApplyMarketFee(dyn, marketFee)
		e.putDynamic(dyn)
	}

	order.SellAmount.Value = num.UintZero().Sub(order.SellAmount.Value, pays.Value)

	reserveDyn := e.dynamicData(types.ReserveAsset)
	paidDyn := e.dynamicData(order.DeferredFeePaid.Asset)
	e.fee.FlushDeferred(order, reserveDyn, paidDyn)
	e.putDynamic(reserveDyn)
	if paidDyn.Asset != reserveDyn.Asset {
		e.putDynamic(paidDyn)
	}

	removed := order.SellAmount.Value.IsZero()
	if removed {
		e.st.RemoveLimitOrder(order.ID)
	}

	e.emit(&events.FillOrder{
		OrderID:   order.ID,
		Owner:     order.Owner,
		Pays:      pays,
		Receives:  types.Amount{Value: netReceive, Asset: receives.Asset},
		Fee:       types.Amount{Value: marketFee, Asset: receives.Asset},
		FillPrice: order.Price,
		IsMaker:   isMaker,
	})

	return removed, nil
}

// FillCall applies a single fill to a call order: pays (in
// order.Collateral.Asset) is taken from its collateral, receives (in
// order.Debt.Asset) retires that much debt. counterparty is not credited
// here: the counterparty's own Fill* call credits what it receives.
// Retired debt is not fee
// bearing: it never reaches a balance, it is simply extinguished, so no
// market fee parameters are taken here. If debt reaches zero the residual
// collateral is freed back to the borrower and the order is deleted;
// otherwise call_price is recomputed from the new (debt, collateral, MCR).
func (e *Engine) FillCall(order *types.CallOrder, pays, receives types.Amount, counterparty string, mcr types.Ratio, isMaker bool) (bool, error) {
	if order.Collateral.Asset != pays.Asset || order.Debt.Asset != receives.Asset {
		return false, types.ErrAssetKindMismatch
	}
	if pays.Value.GT(order.Collateral.Value) || receives.Value.GT(order.Debt.Value) {
		e.log.Panic("fill exceeds call order's remaining debt/collateral",
			logging.Uint64("order", uint64(order.ID)))
	}

	order.Collateral.Value = num.UintZero().Sub(order.Collateral.Value, pays.Value)
	order.Debt.Value = num.UintZero().Sub(order.Debt.Value, receives.Value)

	dyn := e.dynamicData(order.Debt.Asset)
	dyn.CurrentSupply = num.UintZero().Sub(dyn.CurrentSupply, receives.Value)
	e.putDynamic(dyn)

	removed := order.Debt.Value.IsZero()
	if removed {
		if !order.Collateral.Value.IsZero() {
			if err := e.credit(order.Borrower, order.Collateral); err != nil {
				return false, err
			}
		}
		e.st.RemoveCallOrder(order.ID)
	} else {
		order.RecomputeCallPrice(mcr)
		e.st.ReindexCallOrder(order)
	}

	e.emit(&events.FillOrder{
		OrderID:   order.ID,
		Owner:     order.Borrower,
		Pays:      pays,
		Receives:  receives,
		Fee:       types.Amount{Value: num.UintZero(), Asset: receives.Asset},
		FillPrice: order.CallPrice,
		IsMaker:   isMaker,
	})

	return removed, nil
}

// FillSettlement applies a single fill to a force-settlement order: the
// settlement balance is reduced (or the order removed when fully paid)
// and receives, net of the market fee, is credited to the owner. The
// force-settlement order is always the taker; isMaker is accepted for
// symmetry with the other Fill* functions and is normally false.
func (e *Engine) FillSettlement(order *types.ForceSettlementOrder, pays, receives types.Amount, feePercent types.Ratio, feeCap *types.AmountCap, isMaker bool) (bool, error) {
	if order.Balance.Asset != pays.Asset {
		return false, types.ErrAssetKindMismatch
	}
	if pays.Value.GT(order.Balance.Value) {
		e.log.Panic("fill exceeds force-settlement order's remaining balance",
			logging.Uint64("order", uint64(order.ID)))
	}

	marketFee := e.fee.MarketFee(receives, feePercent, feeCap)
	netReceive, _ := num.UintZero().Delta(receives.Value, marketFee)

	if err := e.credit(order.Owner, types.Amount{Value: netReceive, Asset: receives.Asset}); err != nil {
		return false, err
	}
	if !marketFee.IsZero() {
		dyn := e.dynamicData(receives.Asset)
		e.fee.ApplyMarketFee(dyn, marketFee)
		e.putDynamic(dyn)
	}

	order.Balance.Value = num.UintZero().Sub(order.Balance.Value, pays.Value)

	removed := order.Balance.Value.IsZero()
	if removed {
		e.st.RemoveForceSettlement(order.ID)
	}

	e.emit(&events.FillOrder{
		OrderID:   order.ID,
		Owner:     order.Owner,
		Pays:      pays,
		Receives:  types.Amount{Value: netReceive, Asset: receives.Asset},
		Fee:       types.Amount{Value: marketFee, Asset: receives.Asset},
		FillPrice: types.Price{},
		IsMaker:   isMaker,
	})

	return removed, nil
}

package engine

import (
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// SubmitLimitOrder debits owner for sell, builds a new LimitOrder with the
// next id, and hands it to the matching core. rested reports whether any
// part of the order survived to rest on the book.
func (e *Engine) SubmitLimitOrder(owner string, sell types.Amount, price types.Price, deferredFeeReserve, deferredFeePaid types.Amount) (*types.LimitOrder, bool, error) {
	defer metrics.NewTimeCounter(sell.Asset.String(), "engine", "SubmitLimitOrder").EngineTimeCounterAdd()

	if sell.IsZero() {
		return nil, false, types.ErrZeroSellAmount
	}
	if err := e.debit(owner, sell); err != nil {
		return nil, false, err
	}
	if err := e.debit(owner, deferredFeePaid); err != nil {
		return nil, false, err
	}

	id, _ := e.ids.Next()
	order := &types.LimitOrder{
		ID:                 id,
		Owner:              owner,
		SellAmount:         sell,
		Price:              price,
		DeferredFeeReserve: deferredFeeReserve,
		DeferredFeePaid:    deferredFeePaid,
	}

	e.st.InsertLimitOrder(order)

	rested, err := e.match.ApplyOrder(order)
	if err != nil {
		return nil, false, err
	}
	return order, rested, nil
}

// CancelLimitOrder removes a resting order, refunding the unfilled sell
// amount and splitting the deferred fee per fee.Engine's Cancel rules.
// skipCancelFee exempts the owner from the cancellation fee, so the
// deferred fee paid is refunded in full.
func (e *Engine) CancelLimitOrder(id types.OrderID, skipCancelFee bool) error {
	o, ok := e.st.GetLimitOrder(id)
	if !ok {
		return types.ErrOrderNotFound
	}
	defer metrics.NewTimeCounter(o.SellAsset().String(), "engine", "CancelLimitOrder").EngineTimeCounterAdd()

	res := e.fee.Cancel(o, skipCancelFee)

	if err := e.credit(o.Owner, o.SellAmount); err != nil {
		return err
	}
	refund := types.Amount{Value: res.RefundToOwner, Asset: o.DeferredFeePaid.Asset}
	if err := e.credit(o.Owner, refund); err != nil {
		return err
	}
	if !res.ChargeReserve.IsZero() {
		if err := e.debit(o.Owner, types.Amount{Value: res.ChargeReserve, Asset: types.ReserveAsset}); err != nil {
			return err
		}
	}

	paidDyn := e.dynamicData(o.DeferredFeePaid.Asset)
	e.fee.ApplyMarketFee(paidDyn, res.CancelFeePaidAsset)
	e.st.PutDynamicData(paidDyn)

	if !res.FeePoolReserve.IsZero() {
		reserveDyn := e.dynamicData(types.ReserveAsset)
		reserveDyn.FeePool = num.UintZero().Add(reserveDyn.FeePool, res.FeePoolReserve)
		e.st.PutDynamicData(reserveDyn)
	}

	e.st.RemoveLimitOrder(id)

	e.emit(events.LimitOrderCancel{
		OrderID:   id,
		Owner:     o.Owner,
		Refund:    o.SellAmount,
		CancelFee: types.Amount{Value: res.CancelFeePaidAsset, Asset: o.DeferredFeePaid.Asset},
	})
	return nil
}

func (e *Engine) emit(ev events.Event) {
	if b := e.st.Broker(); b != nil {
		b.Send(ev)
	}
}

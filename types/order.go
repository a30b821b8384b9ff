package types

// OrderID uniquely identifies an order, bid, or settlement record. The
// underlying object ID is the stable identity — never renumbered — and
// doubles as the store's insertion-order tiebreaker.
type OrderID uint64

// LimitOrder is an ordinary resting order: sell SellAmount of
// Price.Base.Asset at Price.
//
// Invariant: SellAmount.Value > 0.
type LimitOrder struct {
	ID    OrderID
	Owner string

	SellAmount Amount
	Price Price // Price.Base.Asset == SellAmount.Asset (sell/receive); higher Price (more sold per unit received) is more competitive

	// DeferredFeeReserve is the reserve-equivalent amount of the
	// submission fee that still has to be charged or refunded.
	DeferredFeeReserve Amount
	// DeferredFeePaid is the amount actually paid by the owner at
	// submission time, possibly in a non-reserve asset.
	DeferredFeePaid Amount
	// PreFeeCancelFork records whether this order predates the fork that
	// changed cancellation-fee bookkeeping.
	PreFeeCancelFork bool
}

func (o *LimitOrder) SellAsset() AssetID    { return o.SellAmount.Asset }
func (o *LimitOrder) ReceiveAsset() AssetID { return o.Price.Quote.Asset }

// ReceiveAmountAt returns how much the order would receive if fully filled
// at its own price, rounded in the order's favor (it is the maker).
func (o *LimitOrder) ReceiveAmountAt(sellAmount Amount) (Amount, error) {
	v, asset, err := o.Price.Mul(sellAmount.Value, sellAmount.Asset, true)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Value: v, Asset: asset}, nil
}

// CallOrder is a borrower's open short position: Debt units of a MIA
// backed by Collateral units of that MIA's backing asset.
//
// Invariant: Debt.Value > 0 && Collateral.Value > 0.
type CallOrder struct {
	ID        OrderID
	Borrower  string
	Debt      Amount
	Collateral Amount
	CallPrice Price // Base=Collateral.Asset, Quote=Debt.Asset
}

// RecomputeCallPrice recalculates CallPrice from the current (debt,
// collateral) pair and the asset's MCR.
func (c *CallOrder) RecomputeCallPrice(mcr Ratio) {
	c.CallPrice = CallPrice(c.Debt, c.Collateral, mcr)
}

// CallPrice computes price::call_price(debt, collateral, MCR): the
// collateral/debt ratio at which the position exactly meets its
// maintenance requirement, expressed base=collateral, quote=debt so that
// call orders naturally sort ascending by collateralization, least-
// collateralized first. See
// DESIGN.md for the rationale behind fixing this orientation.
func CallPrice(debt, collateral Amount, mcr Ratio) Price {
	requiredDebt := mcr.MulCeil(debt.Value)
	return Price{
		Base:  Amount{Value: collateral.Value.Clone(), Asset: collateral.Asset},
		Quote: Amount{Value: requiredDebt, Asset: debt.Asset},
	}
}

// ForceSettlementOrder is a holder's claim to redeem Balance worth of a MIA
// at the prevailing feed price. Queueing/delay handling is
// external to this core.
type ForceSettlementOrder struct {
	ID      OrderID
	Owner   string
	Balance Amount
}

// CollateralBid is a standing offer of additional collateral to help
// revive a globally-settled MIA. InvSwanPrice is the bidder's
// offered collateral/debt ratio, inverted (so higher bids sort first under
// the same ascending-by-key convention used elsewhere).
type CollateralBid struct {
	ID           OrderID
	Bidder       string
	Collateral   Amount
	InvSwanPrice Price
}

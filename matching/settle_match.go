package matching

import (
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// ProcessForceSettlements matches mia's outstanding force-settlement
// claims against its least-collateralized call orders at the current
// feed price: each settlement redeems call debt 1:1 and the call pays
// out collateral at feed.SettlementPrice, rounded down in the call's
// favor, exactly the generic Match rounding rule applied to a maker
// whose price is fixed by the feed rather than by its own call_price. A
// call whose payout would reach or exceed its own collateral at this
// price is a black-swan condition, resolved by the same settle-or-return
// BlackSwanError choice as in the margin-call sweep. Settlement claims are processed oldest-submitted first; this
// does not batch against a per-maintenance-interval volume cap, since
// no such scheduler exists in this core.
func (e *Engine) ProcessForceSettlements(mia types.AssetID) error {
	defer metrics.NewTimeCounter(mia.String(), "matching", "ProcessForceSettlements").EngineTimeCounterAdd()

	bit, ok := e.st.GetBitassetData(mia)
	if !ok || bit.HasSettlement() || !bit.HasFeed {
		return nil
	}
	matchPrice := bit.CurrentFeed.SettlementPrice

	var pending []types.OrderID
	e.st.IterateForceSettlements(mia, func(s *types.ForceSettlementOrder) bool {
		pending = append(pending, s.ID)
		return true
	})

	for _, id := range pending {
		for {
			settle, ok := e.st.GetForceSettlement(id)
			if !ok {
				break
			}
			call, ok := e.st.LeastCollateralized(mia)
			if !ok {
				return nil
			}

			debt := settle.Balance.Value
			if debt.GT(call.Debt.Value) {
				debt = call.Debt.Value
			}
			collateral, _, mulErr := matchPrice.Mul(debt, matchPrice.Base.Asset, false)
			if mulErr != nil {
				return mulErr
			}
			if collateral.GTE(call.Collateral.Value) {
				if !e.cfg.BlackSwanEnabled {
					return types.NewBlackSwanError(mia)
				}
				return e.GloballySettle(mia, bit.CurrentFeed.SettlementPrice)
			}

			debtAmt := types.Amount{Value: debt, Asset: mia}
			collateralAmt := types.Amount{Value: collateral, Asset: bit.Options.BackingAsset}

			if _, err := e.FillCall(call, collateralAmt, debtAmt, settle.Owner, bit.CurrentFeed.MCR, true); err != nil {
				return err
			}
			removed, err := e.FillSettlement(settle, debtAmt, collateralAmt, e.marketFeeFor(bit.Options.BackingAsset), e.marketFeeCapFor(bit.Options.BackingAsset), false)
			if err != nil {
				return err
			}
			if removed {
				break
			}
		}
	}
	return nil
}

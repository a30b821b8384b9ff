package matching

import "github.com/Freetsh/freetsh-core/types"

// matchAgainstCall settles a taker's debt-asset offer against a call
// order's open debt, at matchPrice (Base=debt asset, Quote=collateral
// asset — the orientation of an inverted CallPrice). Unlike Match, the
// debt leg never needs a price conversion: both takerDebtAvail and the
// call's outstanding debt are already denominated in the same asset, so
// the smaller of the two is compared directly and only the collateral leg
// is computed via matchPrice, always rounded down in the call's favor
// (the call is always the maker on this path).
func matchAgainstCall(takerDebtAvail, callDebtAvail types.Amount, matchPrice types.Price) (code int, debtTransferred, collateralTransferred types.Amount, err error) {
	if takerDebtAvail.Asset != callDebtAvail.Asset || takerDebtAvail.Asset != matchPrice.Base.Asset {
		return 0, types.Amount{}, types.Amount{}, types.ErrAssetKindMismatch
	}

	debt := takerDebtAvail.Value
	if debt.GT(callDebtAvail.Value) {
		debt = callDebtAvail.Value
	}

	collateral, _, mulErr := matchPrice.Mul(debt, matchPrice.Base.Asset, false)
	if mulErr != nil {
		return 0, types.Amount{}, types.Amount{}, mulErr
	}

	if debt.EQ(takerDebtAvail.Value) {
		code |= TakerFilled
	}
	if debt.EQ(callDebtAvail.Value) {
		code |= MakerFilled
	}

	return code, types.Amount{Value: debt, Asset: takerDebtAvail.Asset}, types.Amount{Value: collateral, Asset: matchPrice.Quote.Asset}, nil
}

package engine

import (
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// OpenCallOrder opens a new short position: debt units of a MIA minted
// against collateral units of its backing asset, debited from borrower.
// A thinly-collateralized position can be immediately liquidatable, so
// this triggers a margin-call sweep before returning.
func (e *Engine) OpenCallOrder(borrower string, debt, collateral types.Amount) (*types.CallOrder, error) {
	defer metrics.NewTimeCounter(debt.Asset.String(), "engine", "OpenCallOrder").EngineTimeCounterAdd()

	if debt.IsZero() || collateral.IsZero() {
		return nil, types.ErrZeroDebtOrCollateral
	}
	bit, err := e.bitasset(debt.Asset)
	if err != nil {
		return nil, err
	}
	if bit.Options.BackingAsset != collateral.Asset {
		return nil, types.ErrAssetKindMismatch
	}
	if bit.HasSettlement() {
		return nil, types.ErrAlreadySettled
	}

	if err := e.debit(borrower, collateral); err != nil {
		return nil, err
	}
	if err := e.credit(borrower, debt); err != nil {
		return nil, err
	}

	dyn := e.dynamicData(debt.Asset)
	dyn.CurrentSupply = num.UintZero().Add(dyn.CurrentSupply, debt.Value)
	e.st.PutDynamicData(dyn)

	id, _ := e.ids.Next()
	call := &types.CallOrder{
		ID:         id,
		Borrower:   borrower,
		Debt:       debt,
		Collateral: collateral,
	}
	call.RecomputeCallPrice(mcrFor(bit))
	e.st.InsertCallOrder(call)

	if _, err := e.match.CheckCallOrders(debt.Asset, false); err != nil {
		return nil, err
	}
	return call, nil
}

// UpdateCallOrder adjusts an open position to the given absolute debt and
// collateral. A zero newDebt closes the position, returning any leftover
// collateral to the borrower. Every update re-triggers a margin-call
// sweep, since either raising debt or lowering collateral can make the
// position immediately liquidatable.
func (e *Engine) UpdateCallOrder(id types.OrderID, newDebt, newCollateral types.Amount) error {
	call, ok := e.st.GetCallOrder(id)
	if !ok {
		return types.ErrOrderNotFound
	}
	defer metrics.NewTimeCounter(call.Debt.Asset.String(), "engine", "UpdateCallOrder").EngineTimeCounterAdd()

	if newDebt.Asset != call.Debt.Asset || newCollateral.Asset != call.Collateral.Asset {
		return types.ErrAssetKindMismatch
	}
	bit, err := e.bitasset(call.Debt.Asset)
	if err != nil {
		return err
	}
	if bit.HasSettlement() {
		return types.ErrAlreadySettled
	}
	if !newDebt.IsZero() && newCollateral.IsZero() {
		return types.ErrZeroDebtOrCollateral
	}

	debtDelta, debtDown := num.UintZero().Delta(newDebt.Value, call.Debt.Value)
	if debtDown {
		if err := e.debit(call.Borrower, types.Amount{Value: debtDelta, Asset: call.Debt.Asset}); err != nil {
			return err
		}
	} else if !debtDelta.IsZero() {
		if err := e.credit(call.Borrower, types.Amount{Value: debtDelta, Asset: call.Debt.Asset}); err != nil {
			return err
		}
	}

	collateralDelta, collateralDown := num.UintZero().Delta(newCollateral.Value, call.Collateral.Value)
	if collateralDown {
		if err := e.credit(call.Borrower, types.Amount{Value: collateralDelta, Asset: call.Collateral.Asset}); err != nil {
			return err
		}
	} else if !collateralDelta.IsZero() {
		if err := e.debit(call.Borrower, types.Amount{Value: collateralDelta, Asset: call.Collateral.Asset}); err != nil {
			return err
		}
	}

	dyn := e.dynamicData(call.Debt.Asset)
	if debtDown {
		dyn.CurrentSupply = num.UintZero().Sub(dyn.CurrentSupply, debtDelta)
	} else if !debtDelta.IsZero() {
		dyn.CurrentSupply = num.UintZero().Add(dyn.CurrentSupply, debtDelta)
	}
	e.st.PutDynamicData(dyn)

	call.Debt = newDebt
	call.Collateral = newCollateral

	if newDebt.IsZero() {
		if !newCollateral.IsZero() {
			if err := e.credit(call.Borrower, newCollateral); err != nil {
				return err
			}
		}
		e.st.RemoveCallOrder(id)
		return nil
	}

	call.RecomputeCallPrice(mcrFor(bit))
	e.st.ReindexCallOrder(call)

	_, err = e.match.CheckCallOrders(call.Debt.Asset, false)
	return err
}

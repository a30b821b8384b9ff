package fee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freetsh/freetsh-core/fee"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/types"
)

const (
	reserve types.AssetID = types.ReserveAsset
	mia     types.AssetID = 1
)

func newEngine(cfg fee.Config) *fee.Engine {
	return fee.New(logging.NewTestLogger(), cfg)
}

func TestMarketFeeCappedByAmountCap(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())

	received := types.NewAmount(10_000, mia)
	percent := types.NewRatio(25, 10000) // 0.25%
	uncapped := e.MarketFee(received, percent, nil)
	assert.Equal(t, uint64(25), uncapped.Uint64())

	capped := e.MarketFee(received, percent, &types.AmountCap{Value: 10})
	assert.Equal(t, uint64(10), capped.Uint64())
}

func TestApplyMarketFeeIgnoresZero(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())
	dyn := types.NewAssetDynamicData(mia)

	e.ApplyMarketFee(dyn, num.UintZero())
	assert.True(t, dyn.AccumulatedFees.IsZero())

	e.ApplyMarketFee(dyn, num.NewUint(5))
	assert.Equal(t, uint64(5), dyn.AccumulatedFees.Uint64())
}

func TestCancelPreForkRefundsFullReserveFee(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())
	o := &types.LimitOrder{
		DeferredFeeReserve: types.NewAmount(7, reserve),
		DeferredFeePaid:    types.NewAmount(7, reserve),
		PreFeeCancelFork:   true,
	}

	res := e.Cancel(o, false)
	assert.Equal(t, uint64(7), res.RefundToOwner.Uint64())
	assert.True(t, res.CancelFeePaidAsset.IsZero())
	assert.True(t, res.ChargeReserve.IsZero())
}

func TestCancelSkipFeeRefundsDeferredInFull(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())
	o := &types.LimitOrder{
		DeferredFeeReserve: types.NewAmount(20, reserve),
		DeferredFeePaid:    types.NewAmount(20, reserve),
	}

	res := e.Cancel(o, true)
	assert.Equal(t, uint64(20), res.RefundToOwner.Uint64())
	assert.True(t, res.CancelFeePaidAsset.IsZero())
	assert.Equal(t, uint64(20), res.FeePoolReserve.Uint64())
}

func TestCancelProratesFeeIntoPaidAsset(t *testing.T) {
	cfg := fee.NewDefaultConfig()
	cfg.CancellationFeeReserve = 10
	e := newEngine(cfg)

	o := &types.LimitOrder{
		DeferredFeeReserve: types.NewAmount(100, reserve),
		DeferredFeePaid:    types.NewAmount(200, mia),
	}

	res := e.Cancel(o, false)
	// cancelPaidAsset = ceil(200*10/100) = 20
	assert.Equal(t, uint64(20), res.CancelFeePaidAsset.Uint64())
	assert.Equal(t, uint64(180), res.RefundToOwner.Uint64())
	assert.Equal(t, uint64(90), res.FeePoolReserve.Uint64())
	assert.True(t, res.ChargeReserve.IsZero())
}

func TestFlushDeferredCashbackVestsToReserve(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())
	reserveDyn := types.NewAssetDynamicData(reserve)
	paidDyn := types.NewAssetDynamicData(reserve)

	o := &types.LimitOrder{
		DeferredFeeReserve: types.NewAmount(15, reserve),
		DeferredFeePaid:    types.NewAmount(15, reserve),
	}

	e.FlushDeferred(o, reserveDyn, paidDyn)
	assert.Equal(t, uint64(15), reserveDyn.AccumulatedFees.Uint64())
	assert.True(t, o.DeferredFeeReserve.IsZero())
	assert.True(t, o.DeferredFeePaid.IsZero())
}

func TestFlushDeferredNonReserveGoesToPaidAsset(t *testing.T) {
	e := newEngine(fee.NewDefaultConfig())
	reserveDyn := types.NewAssetDynamicData(reserve)
	paidDyn := types.NewAssetDynamicData(mia)

	o := &types.LimitOrder{
		DeferredFeeReserve: types.NewAmount(15, reserve),
		DeferredFeePaid:    types.NewAmount(30, mia),
	}

	e.FlushDeferred(o, reserveDyn, paidDyn)
	assert.True(t, reserveDyn.AccumulatedFees.IsZero())
	assert.Equal(t, uint64(30), paidDyn.AccumulatedFees.Uint64())
}

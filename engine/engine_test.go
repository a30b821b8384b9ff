package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freetsh/freetsh-core/engine"
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/idgen"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/store"
	"github.com/Freetsh/freetsh-core/types"
)

const (
	reserve types.AssetID = types.ReserveAsset
	mia     types.AssetID = 1
)

func newTestEngine() (*engine.Engine, store.Store) {
	st := store.New(events.NewRecorder())
	e := engine.New(logging.NewTestLogger(), engine.NewDefaultConfig(), st, idgen.NewGenerator())
	return e, st
}

func defaultOptions() types.BitassetOptions {
	return types.BitassetOptions{
		BackingAsset:     reserve,
		MCR:              types.NewRatio(175, 100),
		MSSR:             types.NewRatio(110, 100),
		MarketFeePercent: types.NewRatio(25, 10000),
	}
}

func TestCreateMarketRejectsDuplicates(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.CreateMarket(mia, defaultOptions()))
	err := e.CreateMarket(mia, defaultOptions())
	assert.ErrorIs(t, err, types.ErrMarketExists)
}

func TestCreateMarketRejectsInvalidRatios(t *testing.T) {
	e, _ := newTestEngine()

	opts := defaultOptions()
	opts.MCR = types.Ratio{Numerator: 175, Denominator: 0}
	err := e.CreateMarket(mia, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.ErrInvalidRatio.Error())
}

func TestCreateMarketRejectsSelfBackedAsset(t *testing.T) {
	e, _ := newTestEngine()

	opts := defaultOptions()
	opts.BackingAsset = mia
	err := e.CreateMarket(mia, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.ErrAssetKindMismatch.Error())
}

func TestSubmitLimitOrderDebitsSellerAndRests(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))
	require.NoError(t, st.AdjustBalance("alice", mia, num.NewInt(1000)))

	order, rested, err := e.SubmitLimitOrder("alice", types.NewAmount(500, mia), types.NewPrice(1, mia, 1, reserve), types.Amount{Value: num.UintZero(), Asset: reserve}, types.Amount{Value: num.UintZero(), Asset: reserve})
	require.NoError(t, err)
	assert.True(t, rested)
	require.NotNil(t, order)

	assert.Equal(t, uint64(500), st.Balance("alice", mia).Uint64())
	_, ok := st.GetLimitOrder(order.ID)
	assert.True(t, ok)
}

func TestSubmitLimitOrderRejectsZeroSell(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	_, _, err := e.SubmitLimitOrder("alice", types.Amount{Value: num.UintZero(), Asset: mia}, types.NewPrice(1, mia, 1, reserve), types.Amount{}, types.Amount{})
	assert.ErrorIs(t, err, types.ErrZeroSellAmount)
}

func TestCancelLimitOrderRefundsSellAmount(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))
	require.NoError(t, st.AdjustBalance("alice", mia, num.NewInt(1000)))

	order, _, err := e.SubmitLimitOrder("alice", types.NewAmount(500, mia), types.NewPrice(1, mia, 1, reserve), types.Amount{Value: num.UintZero(), Asset: reserve}, types.Amount{Value: num.UintZero(), Asset: reserve})
	require.NoError(t, err)

	require.NoError(t, e.CancelLimitOrder(order.ID, false))
	assert.Equal(t, uint64(1000), st.Balance("alice", mia).Uint64())
	_, ok := st.GetLimitOrder(order.ID)
	assert.False(t, ok)
}

func TestOpenCallOrderMintsDebtAndDebitsCollateral(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))
	require.NoError(t, st.AdjustBalance("bob", reserve, num.NewInt(1000)))

	call, err := e.OpenCallOrder("bob", types.NewAmount(100, mia), types.NewAmount(500, reserve))
	require.NoError(t, err)
	require.NotNil(t, call)

	assert.Equal(t, uint64(500), st.Balance("bob", reserve).Uint64())
	assert.Equal(t, uint64(100), st.Balance("bob", mia).Uint64())

	dyn, ok := st.GetDynamicData(mia)
	require.True(t, ok)
	assert.Equal(t, uint64(100), dyn.CurrentSupply.Uint64())
}

func TestOpenCallOrderRejectsZeroDebtOrCollateral(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	_, err := e.OpenCallOrder("bob", types.Amount{Value: num.UintZero(), Asset: mia}, types.NewAmount(500, reserve))
	assert.ErrorIs(t, err, types.ErrZeroDebtOrCollateral)
}

func TestOpenCallOrderRejectsWrongCollateralAsset(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	_, err := e.OpenCallOrder("bob", types.NewAmount(100, mia), types.NewAmount(500, mia))
	assert.ErrorIs(t, err, types.ErrAssetKindMismatch)
}

func TestUpdateCallOrderClosesPositionOnZeroDebt(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))
	require.NoError(t, st.AdjustBalance("bob", reserve, num.NewInt(1000)))

	call, err := e.OpenCallOrder("bob", types.NewAmount(100, mia), types.NewAmount(500, reserve))
	require.NoError(t, err)

	err = e.UpdateCallOrder(call.ID, types.Amount{Value: num.UintZero(), Asset: mia}, types.Amount{Value: num.UintZero(), Asset: reserve})
	require.NoError(t, err)

	_, ok := st.GetCallOrder(call.ID)
	assert.False(t, ok)
	// collateral fully returned, debt fully repaid
	assert.Equal(t, uint64(1000), st.Balance("bob", reserve).Uint64())
	assert.Equal(t, uint64(0), st.Balance("bob", mia).Uint64())
}

func TestPublishFeedAndWithdrawFeedRoundTrip(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	f := types.Feed{
		SettlementPrice: types.NewPrice(1, mia, 2, reserve),
		MCR:             types.NewRatio(175, 100),
		MSSR:            types.NewRatio(110, 100),
	}
	_, err := e.PublishFeed(mia, "oracle1", f)
	require.NoError(t, err)

	bit, ok := st.GetBitassetData(mia)
	require.True(t, ok)
	assert.True(t, bit.HasFeed)

	require.NoError(t, e.WithdrawFeed(mia, "oracle1"))
	bit, ok = st.GetBitassetData(mia)
	require.True(t, ok)
	assert.False(t, bit.HasFeed)
}

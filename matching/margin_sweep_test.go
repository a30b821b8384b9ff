package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freetsh/freetsh-core/types"
)

func TestCheckCallOrdersFillsUndercollateralizedPositionAgainstBook(t *testing.T) {
	e, st := newTestEngine()

	// feed: 1 mia = 10 reserve. MSSR floor = ceil(1*1.1)=2 vs 10, i.e. a
	// real floor price of 5.0 reserve/mia.
	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(200, 100), MSSR: types.NewRatio(110, 100)}
	st.PutBitassetData(&types.BitassetData{
		Asset:   mia,
		Options: opts,
		HasFeed: true,
		CurrentFeed: types.Feed{
			SettlementPrice: types.NewPrice(1, mia, 10, reserve),
			MCR:             opts.MCR,
			MSSR:            opts.MSSR,
		},
	})
	st.PutDynamicData(types.NewAssetDynamicData(mia))

	require.NoError(t, st.AdjustBalance("bob", reserve, mustInt(1100)))
	require.NoError(t, st.AdjustBalance("bob", reserve, mustInt(-1100))) // locked as collateral below
	call := &types.CallOrder{ID: 1, Borrower: "bob", Debt: types.NewAmount(100, mia), Collateral: types.NewAmount(1100, reserve)}
	call.RecomputeCallPrice(opts.MCR) // breakeven: requires ceil(100*2)=200, so 1100/200=5.5 reserve/mia
	st.InsertCallOrder(call)

	require.NoError(t, st.AdjustBalance("carol", mia, mustInt(1000)))
	// resting ask at 26/5=5.2 reserve/mia: between the 5.0 floor and the
	// call's 5.5 breakeven, so the sweep can execute profitably.
	resting := &types.LimitOrder{ID: 2, Owner: "carol", SellAmount: types.NewAmount(1000, mia), Price: types.NewPrice(5, mia, 26, reserve)}
	st.InsertLimitOrder(resting)

	matched, err := e.CheckCallOrders(mia, false)
	require.NoError(t, err)
	assert.True(t, matched)

	// call's 100 debt fully retired; collateral spent = floor(100*26/5)=520
	_, stillOpen := st.GetCallOrder(call.ID)
	assert.False(t, stillOpen)
	assert.Equal(t, uint64(580), st.Balance("bob", reserve).Uint64())
	assert.Equal(t, uint64(520), st.Balance("carol", reserve).Uint64())

	rest, stillResting := st.GetLimitOrder(resting.ID)
	require.True(t, stillResting)
	assert.Equal(t, uint64(900), rest.SellAmount.Value.Uint64())
}

func TestCheckCallOrdersNoOpWithoutFeed(t *testing.T) {
	e, st := newTestEngine()
	st.PutBitassetData(&types.BitassetData{Asset: mia, Options: types.BitassetOptions{BackingAsset: reserve}})

	matched, err := e.CheckCallOrders(mia, false)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCheckCallOrdersLeavesFeedProtectedPositionAlone(t *testing.T) {
	e, st := newTestEngine()

	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100), MSSR: types.NewRatio(110, 100)}
	st.PutBitassetData(&types.BitassetData{
		Asset:   mia,
		Options: opts,
		HasFeed: true,
		CurrentFeed: types.Feed{
			SettlementPrice: types.NewPrice(1, mia, 2, reserve),
			MCR:             opts.MCR,
			MSSR:            opts.MSSR,
		},
	})
	st.PutDynamicData(types.NewAssetDynamicData(mia))

	require.NoError(t, st.AdjustBalance("bob", reserve, mustInt(1000)))
	call := &types.CallOrder{ID: 1, Borrower: "bob", Debt: types.NewAmount(100, mia), Collateral: types.NewAmount(1000, reserve)}
	call.RecomputeCallPrice(opts.MCR) // well collateralized
	st.InsertCallOrder(call)

	// a resting ask inside the MSSR bound: only the feed-protection check
	// keeps the sweep from filling the call against it.
	resting := &types.LimitOrder{ID: 2, Owner: "carol", SellAmount: types.NewAmount(1000, mia), Price: types.NewPrice(1, mia, 2, reserve)}
	st.InsertLimitOrder(resting)

	matched, err := e.CheckCallOrders(mia, false)
	require.NoError(t, err)
	assert.False(t, matched)
	_, stillOpen := st.GetCallOrder(call.ID)
	assert.True(t, stillOpen)
}

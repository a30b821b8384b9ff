package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freetsh/freetsh-core/types"
)

func TestProcessForceSettlementsPartiallyRedeemsAgainstCall(t *testing.T) {
	e, st := newTestEngine()

	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)}
	st.PutBitassetData(&types.BitassetData{
		Asset:   mia,
		Options: opts,
		HasFeed: true,
		CurrentFeed: types.Feed{
			SettlementPrice: types.NewPrice(1, mia, 2, reserve),
			MCR:             opts.MCR,
		},
	})
	st.PutDynamicData(types.NewAssetDynamicData(mia))

	call := &types.CallOrder{ID: 1, Borrower: "bob", Debt: types.NewAmount(100, mia), Collateral: types.NewAmount(1000, reserve)}
	call.RecomputeCallPrice(opts.MCR)
	st.InsertCallOrder(call)

	settle := &types.ForceSettlementOrder{ID: 2, Owner: "dave", Balance: types.NewAmount(50, mia)}
	st.InsertForceSettlement(settle)

	require.NoError(t, e.ProcessForceSettlements(mia))

	// settled at the feed price (1 mia = 2 reserve): 50 mia -> 100 reserve
	_, stillPending := st.GetForceSettlement(settle.ID)
	assert.False(t, stillPending)
	assert.Equal(t, uint64(100), st.Balance("dave", reserve).Uint64())

	got, ok := st.GetCallOrder(call.ID)
	require.True(t, ok)
	assert.Equal(t, uint64(50), got.Debt.Value.Uint64())
	assert.Equal(t, uint64(900), got.Collateral.Value.Uint64())
}

func TestProcessForceSettlementsBlackSwansWhenCollateralInsufficient(t *testing.T) {
	e, st := newTestEngine()

	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)}
	st.PutBitassetData(&types.BitassetData{
		Asset:   mia,
		Options: opts,
		HasFeed: true,
		CurrentFeed: types.Feed{
			SettlementPrice: types.NewPrice(1, mia, 2, reserve),
			MCR:             opts.MCR,
		},
	})
	st.PutDynamicData(types.NewAssetDynamicData(mia))

	call := &types.CallOrder{ID: 1, Borrower: "bob", Debt: types.NewAmount(100, mia), Collateral: types.NewAmount(50, reserve)}
	call.RecomputeCallPrice(opts.MCR)
	st.InsertCallOrder(call)

	settle := &types.ForceSettlementOrder{ID: 2, Owner: "dave", Balance: types.NewAmount(100, mia)}
	st.InsertForceSettlement(settle)

	// default config resolves this by globally settling the market rather
	// than propagating a black-swan error.
	require.NoError(t, e.ProcessForceSettlements(mia))

	bit, ok := st.GetBitassetData(mia)
	require.True(t, ok)
	assert.True(t, bit.HasSettlement())
}

func TestProcessForceSettlementsNoOpWithoutFeed(t *testing.T) {
	e, st := newTestEngine()
	st.PutBitassetData(&types.BitassetData{Asset: mia, Options: types.BitassetOptions{BackingAsset: reserve}})

	settle := &types.ForceSettlementOrder{ID: 1, Owner: "dave", Balance: types.NewAmount(50, mia)}
	st.InsertForceSettlement(settle)

	require.NoError(t, e.ProcessForceSettlements(mia))

	_, stillPending := st.GetForceSettlement(settle.ID)
	assert.True(t, stillPending)
}

package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

func openMarket(t *testing.T, st interface {
	PutBitassetData(*types.BitassetData)
	PutDynamicData(*types.AssetDynamicData)
}, opts types.BitassetOptions) {
	t.Helper()
	st.PutBitassetData(&types.BitassetData{Asset: mia, Options: opts})
	st.PutDynamicData(types.NewAssetDynamicData(mia))
}

func TestGloballySettleFixesSettlementPriceAndPreservesSupply(t *testing.T) {
	e, st := newTestEngine()
	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)}
	openMarket(t, st, opts)

	require.NoError(t, st.AdjustBalance("bob", reserve, mustInt(1000)))
	require.NoError(t, st.AdjustBalance("bob", mia, mustInt(100)))
	require.NoError(t, st.AdjustBalance("bob", reserve, mustInt(-500))) // collateral locked in the call order below
	dyn, _ := st.GetDynamicData(mia)
	dyn.CurrentSupply = num.NewUint(100)
	st.PutDynamicData(dyn)

	call := &types.CallOrder{ID: 1, Borrower: "bob", Debt: types.NewAmount(100, mia), Collateral: types.NewAmount(500, reserve)}
	call.RecomputeCallPrice(opts.MCR)
	st.InsertCallOrder(call)

	settlementPrice := types.NewPrice(1, mia, 3, reserve)
	require.NoError(t, e.GloballySettle(mia, settlementPrice))

	bit, ok := st.GetBitassetData(mia)
	require.True(t, ok)
	require.True(t, bit.HasSettlement())
	assert.Equal(t, uint64(100), bit.SettlementPrice.Base.Value.Uint64())
	assert.Equal(t, uint64(300), bit.SettlementPrice.Quote.Value.Uint64())

	dyn, _ = st.GetDynamicData(mia)
	assert.Equal(t, uint64(100), dyn.CurrentSupply.Uint64())

	// residual collateral (500-300=200) returned to bob
	assert.Equal(t, uint64(700), st.Balance("bob", reserve).Uint64())

	_, stillOpen := st.GetCallOrder(call.ID)
	assert.False(t, stillOpen)
}

func TestGloballySettleRejectsAlreadySettled(t *testing.T) {
	e, st := newTestEngine()
	openMarket(t, st, types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)})

	require.NoError(t, e.GloballySettle(mia, types.NewPrice(1, mia, 1, reserve)))
	err := e.GloballySettle(mia, types.NewPrice(1, mia, 1, reserve))
	assert.ErrorIs(t, err, types.ErrAlreadySettled)
}

func TestReviveRejectsWhenNotSettled(t *testing.T) {
	e, st := newTestEngine()
	openMarket(t, st, types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)})

	err := e.Revive(mia, "issuer")
	assert.ErrorIs(t, err, types.ErrNotSettled)
}

func TestReviveClearsSettlementAndRefundsBids(t *testing.T) {
	e, st := newTestEngine()
	opts := types.BitassetOptions{BackingAsset: reserve, MCR: types.NewRatio(175, 100)}
	openMarket(t, st, opts)
	require.NoError(t, e.GloballySettle(mia, types.NewPrice(1, mia, 1, reserve)))

	require.NoError(t, st.AdjustBalance("carol", reserve, mustInt(50)))
	bid := &types.CollateralBid{ID: 5, Bidder: "carol", Collateral: types.NewAmount(50, reserve), InvSwanPrice: types.NewPrice(1, reserve, 1, mia)}
	st.InsertCollateralBid(bid)
	require.NoError(t, st.AdjustBalance("carol", reserve, mustInt(-50)))

	require.NoError(t, e.Revive(mia, "issuer"))

	bit, ok := st.GetBitassetData(mia)
	require.True(t, ok)
	assert.False(t, bit.HasSettlement())
	assert.Equal(t, uint64(50), st.Balance("carol", reserve).Uint64())
}

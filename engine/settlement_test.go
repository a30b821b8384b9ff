package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

func TestGloballySettleAndReviveDelegateToMatchingCore(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	require.NoError(t, e.GloballySettle(mia, types.NewPrice(1, mia, 1, reserve)))
	bit, ok := st.GetBitassetData(mia)
	require.True(t, ok)
	assert.True(t, bit.HasSettlement())

	require.NoError(t, e.Revive(mia, "issuer"))
	bit, ok = st.GetBitassetData(mia)
	require.True(t, ok)
	assert.False(t, bit.HasSettlement())
}

func TestProcessForceSettlementsDelegatesToMatchingCore(t *testing.T) {
	e, st := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	f := types.Feed{
		SettlementPrice: types.NewPrice(1, mia, 2, reserve),
		MCR:             defaultOptions().MCR,
		MSSR:            defaultOptions().MSSR,
	}
	_, err := e.PublishFeed(mia, "oracle1", f)
	require.NoError(t, err)

	require.NoError(t, st.AdjustBalance("bob", reserve, num.NewInt(1000)))
	_, err = e.OpenCallOrder("bob", types.NewAmount(100, mia), types.NewAmount(1000, reserve))
	require.NoError(t, err)

	settle := &types.ForceSettlementOrder{ID: 999, Owner: "dave", Balance: types.NewAmount(50, mia)}
	st.InsertForceSettlement(settle)

	require.NoError(t, e.ProcessForceSettlements(mia))

	_, stillPending := st.GetForceSettlement(settle.ID)
	assert.False(t, stillPending)
	assert.Equal(t, uint64(100), st.Balance("dave", reserve).Uint64())
}

func TestCheckCallOrdersDelegatesToMatchingCore(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.CreateMarket(mia, defaultOptions()))

	matched, err := e.CheckCallOrders(mia, false)
	require.NoError(t, err)
	assert.False(t, matched)
}

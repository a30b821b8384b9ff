package engine

import (
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

func (e *Engine) bitasset(mia types.AssetID) (*types.BitassetData, error) {
	b, ok := e.st.GetBitassetData(mia)
	if !ok {
		return nil, types.ErrNotMarketIssued
	}
	return b, nil
}

func (e *Engine) dynamicData(asset types.AssetID) *types.AssetDynamicData {
	d, ok := e.st.GetDynamicData(asset)
	if !ok {
		d = types.NewAssetDynamicData(asset)
	}
	return d
}

func (e *Engine) credit(account string, amt types.Amount) error {
	if amt.IsZero() {
		return nil
	}
	return e.st.AdjustBalance(account, amt.Asset, num.IntFromUint(amt.Value, false))
}

func (e *Engine) debit(account string, amt types.Amount) error {
	if amt.IsZero() {
		return nil
	}
	return e.st.AdjustBalance(account, amt.Asset, num.IntFromUint(amt.Value, true))
}

// mcrFor returns the maintenance collateral ratio to apply when (re)pricing
// a call order against bit. It prefers the live feed's MCR, falling back to
// the asset's configured default when no feed has posted yet — opening a
// call order before a market's first feed submission is otherwise
// unpriceable.
func mcrFor(bit *types.BitassetData) types.Ratio {
	if bit.HasFeed {
		return bit.CurrentFeed.MCR
	}
	return bit.Options.MCR
}

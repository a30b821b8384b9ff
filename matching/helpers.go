package matching

import (
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

func (e *Engine) dynamicData(asset types.AssetID) *types.AssetDynamicData {
	d, ok := e.st.GetDynamicData(asset)
	if !ok {
		d = types.NewAssetDynamicData(asset)
	}
	return d
}

func (e *Engine) putDynamic(d *types.AssetDynamicData) {
	e.st.PutDynamicData(d)
}

func (e *Engine) bitasset(mia types.AssetID) (*types.BitassetData, error) {
	b, ok := e.st.GetBitassetData(mia)
	if !ok {
		return nil, types.ErrNotMarketIssued
	}
	return b, nil
}

// credit adjusts account's balance up by amt.Value of amt.Asset.
func (e *Engine) credit(account string, amt types.Amount) error {
	if amt.IsZero() {
		return nil
	}
	return e.st.AdjustBalance(account, amt.Asset, num.IntFromUint(amt.Value, false))
}

// debit adjusts account's balance down by amt.Value of amt.Asset.
func (e *Engine) debit(account string, amt types.Amount) error {
	if amt.IsZero() {
		return nil
	}
	return e.st.AdjustBalance(account, amt.Asset, num.IntFromUint(amt.Value, true))
}

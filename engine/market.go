package engine

import (
	"github.com/Freetsh/freetsh-core/libs/cumerror"
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// CreateMarket registers asset as a market-issued asset backed per opts.
// It fails if asset already has a BitassetData record, or if opts itself
// is malformed; every malformed field is reported at once rather than
// stopping at the first one, since an operator fixing a rejected market
// definition wants the full list in one round trip.
func (e *Engine) CreateMarket(asset types.AssetID, opts types.BitassetOptions) error {
	defer metrics.NewTimeCounter(asset.String(), "engine", "CreateMarket").EngineTimeCounterAdd()

	if _, ok := e.st.GetBitassetData(asset); ok {
		return types.ErrMarketExists
	}
	if err := validateOptions(asset, opts); err != nil {
		return err
	}

	e.st.PutBitassetData(&types.BitassetData{
		Asset:   asset,
		Options: opts,
	})
	e.st.PutDynamicData(types.NewAssetDynamicData(asset))
	return nil
}

func validateOptions(asset types.AssetID, opts types.BitassetOptions) error {
	errs := cumerror.New()
	if opts.BackingAsset == asset {
		errs.Add(types.ErrAssetKindMismatch)
	}
	if opts.MCR.Denominator == 0 {
		errs.Add(types.ErrInvalidRatio)
	}
	if opts.MSSR.Denominator == 0 {
		errs.Add(types.ErrInvalidRatio)
	}
	if opts.MarketFeePercent.Denominator == 0 {
		errs.Add(types.ErrInvalidRatio)
	}
	if errs.HasAny() {
		return errs
	}
	return nil
}

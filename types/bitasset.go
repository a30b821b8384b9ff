package types

import "github.com/Freetsh/freetsh-core/libs/num"

// BitassetOptions configures one market-issued asset.
type BitassetOptions struct {
	BackingAsset      AssetID
	MCR               Ratio // maintenance collateral ratio
	MSSR              Ratio // maximum short-squeeze ratio
	MarketFeePercent  Ratio // e.g. NewRatio(25, 10000) for 0.25%
	MaxMarketFee      *AmountCap
	IsPredictionMarket bool
}

// AmountCap caps a fee in a fixed asset amount.
type AmountCap struct {
	Value uint64
}

// Feed is the subset of a price feed relevant to this core.
// Production of Feed values (aggregation across several feed producers)
// lives in package feed; this core only ever reads one.
type Feed struct {
	SettlementPrice Price // Base=MIA, Quote=BackingAsset; ~CallPrice shares this orientation
	MCR             Ratio
	MSSR            Ratio
}

// MaxShortSqueezePrice returns the price beyond which a limit order cannot
// serve as the counterparty to a margin call, derived by
// scaling the feed's settlement price by MSSR.
func (f Feed) MaxShortSqueezePrice() Price {
	return Price{
		Base:  Amount{Value: f.MSSR.MulCeil(f.SettlementPrice.Base.Value), Asset: f.SettlementPrice.Base.Asset},
		Quote: f.SettlementPrice.Quote.Clone(),
	}
}

// BitassetData is the per-MIA control block.
type BitassetData struct {
	Asset   AssetID
	Options BitassetOptions

	CurrentFeed Feed
	HasFeed     bool

	// SettlementPrice is non-nil iff the MIA has undergone global
	// settlement (has_settlement() is equivalent to settlement_price non-null).
	SettlementPrice *Price
	SettlementFund  Amount
}

func (b *BitassetData) HasSettlement() bool {
	return b.SettlementPrice != nil
}

// AssetDynamicData tracks the mutable supply-side bookkeeping for one
// asset. Each field is a bare quantity denominated in Asset.
type AssetDynamicData struct {
	Asset           AssetID
	CurrentSupply   *num.Uint
	AccumulatedFees *num.Uint
	FeePool         *num.Uint
	// ConfidentialSupply is always zero: confidential transfers are out of
	// scope for this core, kept only so the conservation-invariant formula
	// has one stable shape regardless of whether that feature ever ships.
	ConfidentialSupply *num.Uint
}

// NewAssetDynamicData returns a zeroed dynamic-data record for asset.
func NewAssetDynamicData(asset AssetID) *AssetDynamicData {
	return &AssetDynamicData{
		Asset:              asset,
		CurrentSupply:      num.UintZero(),
		AccumulatedFees:    num.UintZero(),
		FeePool:            num.UintZero(),
		ConfidentialSupply: num.UintZero(),
	}
}

// AccountStatistics tracks the reserve-asset bookkeeping needed to enforce
// balance invariants and vesting; only the reserve asset uses
// this record.
type AccountStatistics struct {
	Account             string
	TotalReserveInOrders uint64
}

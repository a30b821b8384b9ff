package fee

import (
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/types"
)

// Engine computes and books market fees, deferred submission fees and
// cancellation fees. It never touches the store or the balance ledger
// directly: every method returns the amounts to move and leaves the actual
// bookkeeping to the caller, matching the way the matching core threads a
// single fee.Engine through every fill path.
type Engine struct {
	log *logging.Logger
	cfg Config
}

func New(log *logging.Logger, cfg Config) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{log: log, cfg: cfg}
}

// ReloadConf reloads the engine's configuration.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.cfg = cfg
}

// MarketFee computes min(max_market_fee, floor(received*percent)) on the
// asset the taker receives.
func (e *Engine) MarketFee(received types.Amount, percent types.Ratio, cap *types.AmountCap) *num.Uint {
	fee := percent.MulFloor(received.Value)
	if cap != nil {
		capVal := num.NewUint(cap.Value)
		if fee.GT(capVal) {
			fee = capVal
		}
	}
	return fee
}

// ApplyMarketFee credits fee into dyn.AccumulatedFees. A zero fee leaves dyn
// untouched, per "Zero fees do not mutate state."
func (e *Engine) ApplyMarketFee(dyn *types.AssetDynamicData, fee *num.Uint) {
	if fee.IsZero() {
		return
	}
	dyn.AccumulatedFees = num.UintZero().Add(dyn.AccumulatedFees, fee)
}

// FlushDeferred moves a limit order's cached deferred fee into accounting
// on the order's first partial fill or its full fill. reserveDyn is the
// reserve asset's dynamic data (for cashback-vesting); paidDyn is the
// dynamic data of DeferredFeePaid.Asset, which may be the same record when
// the order paid in reserve.
func (e *Engine) FlushDeferred(o *types.LimitOrder, reserveDyn, paidDyn *types.AssetDynamicData) {
	if o.DeferredFeeReserve.IsZero() {
		return
	}
	if o.DeferredFeePaid.Asset == types.ReserveAsset {
		// Cashback-vested: reserve fee becomes accumulated fees on the
		// reserve asset itself.
		e.ApplyMarketFee(reserveDyn, o.DeferredFeeReserve.Value)
	} else {
		e.ApplyMarketFee(paidDyn, o.DeferredFeePaid.Value)
	}
	o.DeferredFeeReserve = types.Amount{Value: num.UintZero(), Asset: o.DeferredFeeReserve.Asset}
	o.DeferredFeePaid = types.Amount{Value: num.UintZero(), Asset: o.DeferredFeePaid.Asset}
}

// CancelResult is what the caller must do with the balances and accounting
// records to make a cancellation whole.
type CancelResult struct {
	// RefundToOwner is credited back to the canceling owner, in
	// DeferredFeePaid.Asset.
	RefundToOwner *num.Uint
	// CancelFeePaidAsset is the prorated cancellation fee, charged in
	// DeferredFeePaid.Asset and credited to that asset's accumulated_fees.
	CancelFeePaidAsset *num.Uint
	// FeePoolReserve is credited to the asset's fee_pool in reserve terms.
	// Zero for the reserve-only legacy variant.
	FeePoolReserve *num.Uint
	// ChargeReserve is debited from the owner's reserve balance. Cancel
	// returns zero here in every variant: the cancellation fee is taken
	// out of the deferred fee (CancelFeePaidAsset / FeePoolReserve).
	ChargeReserve *num.Uint
}

// Cancel computes the refund/fee split for canceling o, per the two
// legacy/current variants gated by o.PreFeeCancelFork. skipCancelFee is set
// when the cancellation was triggered by internal cull-small logic before
// the fork, which is exempt from the cancellation fee.
func (e *Engine) Cancel(o *types.LimitOrder, skipCancelFee bool) CancelResult {
	if o.PreFeeCancelFork {
		return CancelResult{
			RefundToOwner:      o.DeferredFeeReserve.Value.Clone(),
			CancelFeePaidAsset: num.UintZero(),
			FeePoolReserve:     num.UintZero(),
			ChargeReserve:      num.UintZero(),
		}
	}

	deferred := o.DeferredFeePaid.Value
	reserveDeferred := o.DeferredFeeReserve.Value
	if skipCancelFee || reserveDeferred.IsZero() {
		return CancelResult{
			RefundToOwner:      deferred.Clone(),
			CancelFeePaidAsset: num.UintZero(),
			FeePoolReserve:     reserveDeferred.Clone(),
			ChargeReserve:      num.UintZero(),
		}
	}

	cancelReserve := num.NewUint(e.cfg.CancellationFeeReserve)
	if cancelReserve.GT(reserveDeferred) {
		cancelReserve = reserveDeferred.Clone()
	}
	// Prorate the reserve-denominated cancel fee into the originally-paid
	// asset: ceil(paid * cancel / deferred).
	numerator := num.UintZero().Mul(deferred, cancelReserve)
	cancelPaidAsset := num.UintZero().DivCeil(numerator, reserveDeferred)
	if cancelPaidAsset.GT(deferred) {
		cancelPaidAsset = deferred.Clone()
	}

	refund, _ := num.UintZero().Delta(deferred, cancelPaidAsset)
	feePoolReserve, _ := num.UintZero().Delta(reserveDeferred, cancelReserve)

	return CancelResult{
		RefundToOwner:      refund,
		CancelFeePaidAsset: cancelPaidAsset,
		FeePoolReserve:     feePoolReserve,
		ChargeReserve:      num.UintZero(),
	}
}

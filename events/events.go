// Package events carries the applied / virtual operation records emitted
// by the matching core. These are plain Go structs, not a wire-level event
// bus: no wire protocol is owned by this core, so there is nothing to
// marshal.
package events

import "github.com/Freetsh/freetsh-core/types"

// Kind identifies the applied-operation variant.
type Kind int

const (
	KindFillOrder Kind = iota
	KindBidCollateral
	KindAssetSettleCancel
	KindExecuteBid
	KindLimitOrderCancel
)

func (k Kind) String() string {
	switch k {
	case KindFillOrder:
		return "fill_order"
	case KindBidCollateral:
		return "bid_collateral"
	case KindAssetSettleCancel:
		return "asset_settle_cancel"
	case KindExecuteBid:
		return "execute_bid"
	case KindLimitOrderCancel:
		return "limit_order_cancel"
	default:
		return "unknown"
	}
}

// Event is the common interface implemented by every applied-operation
// record.
type Event interface {
	Kind() Kind
}

// FillOrder records one pairwise fill: exactly one is
// emitted per fill, by whichever order kind filled.
type FillOrder struct {
	OrderID  types.OrderID
	Owner    string
	Pays     types.Amount
	Receives types.Amount
	Fee      types.Amount
	FillPrice types.Price
	IsMaker  bool
}

func (FillOrder) Kind() Kind { return KindFillOrder }

// BidCollateral records a user posting (or updating) a collateral bid
// against a globally-settled MIA.
type BidCollateral struct {
	BidID      types.OrderID
	Bidder     string
	Collateral types.Amount
	DebtCovered types.Amount
	Cancelled  bool
}

func (BidCollateral) Kind() Kind { return KindBidCollateral }

// AssetSettleCancel records a force-settlement order being cancelled
// before the settlement delay elapsed.
type AssetSettleCancel struct {
	OrderID types.OrderID
	Owner   string
	Balance types.Amount
}

func (AssetSettleCancel) Kind() Kind { return KindAssetSettleCancel }

// ExecuteBid records the synthetic/real collateral bid that revives a
// settled MIA.
type ExecuteBid struct {
	BidID      types.OrderID
	Bidder     string
	Collateral types.Amount
	Debt       types.Amount
}

func (ExecuteBid) Kind() Kind { return KindExecuteBid }

// LimitOrderCancel records a user cancelling a resting limit order
// — every user-visible cancellation emits one, even when no balance
// moves beyond the refund.
type LimitOrderCancel struct {
	OrderID      types.OrderID
	Owner        string
	Refund       types.Amount
	CancelFee    types.Amount
}

func (LimitOrderCancel) Kind() Kind { return KindLimitOrderCancel }

// Sink is the external applied-operation collaborator.
type Sink interface {
	Send(Event)
}

// Recorder is an in-process Sink that simply appends to a slice, used by
// the reference store implementation and by tests that want to assert on
// emitted operations.
type Recorder struct {
	Events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(e Event) {
	r.Events = append(r.Events, e)
}

func (r *Recorder) Reset() {
	r.Events = nil
}

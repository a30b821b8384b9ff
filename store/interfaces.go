// Package store is the reference implementation of the external object
// store collaborator the matching core depends on: ordered secondary
// indexes by price and by id, modify/remove with transactional undo, an
// atomic signed balance primitive, and an applied-operation sink. The
// matching core only ever depends on the Store interface, never on this
// package's btree-backed implementation, so a host embedding this core
// against a real transactional database can swap it in.
package store

import (
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

// Store is the full set of operations the matching core needs from its
// object-store collaborator.
type Store interface {
	// Limit orders, indexed by_price within each (sell,receive) pair,
	// descending by Price (cheapest ask first), order-id ascending as
	// tiebreak.
	InsertLimitOrder(o *types.LimitOrder)
	RemoveLimitOrder(id types.OrderID) (*types.LimitOrder, bool)
	GetLimitOrder(id types.OrderID) (*types.LimitOrder, bool)
	// TopOfBook returns the best (cheapest ask, highest Price) order for
	// the pair.
	TopOfBook(sell, receive types.AssetID) (*types.LimitOrder, bool)
	// IterateLimitOrders walks the (sell,receive) book ascending from the
	// best price, stopping when fn returns false.
	IterateLimitOrders(sell, receive types.AssetID, fn func(*types.LimitOrder) bool)

	// Call orders, indexed by_price ascending per MIA, least-collateralized
	// first.
	InsertCallOrder(o *types.CallOrder)
	RemoveCallOrder(id types.OrderID) (*types.CallOrder, bool)
	GetCallOrder(id types.OrderID) (*types.CallOrder, bool)
	// ReindexCallOrder must be called after a call order's CallPrice
	// changes so the by_price index reflects the new key: any operation
	// that reorders a key must re-lower-bound, never mutate in place.
	ReindexCallOrder(o *types.CallOrder)
	LeastCollateralized(mia types.AssetID) (*types.CallOrder, bool)
	IterateCallOrders(mia types.AssetID, fn func(*types.CallOrder) bool)

	// Force-settlement orders.
	InsertForceSettlement(o *types.ForceSettlementOrder)
	RemoveForceSettlement(id types.OrderID) (*types.ForceSettlementOrder, bool)
	GetForceSettlement(id types.OrderID) (*types.ForceSettlementOrder, bool)
	IterateForceSettlements(mia types.AssetID, fn func(*types.ForceSettlementOrder) bool)

	// Collateral bids, only meaningful while an MIA has_settlement().
	InsertCollateralBid(b *types.CollateralBid)
	RemoveCollateralBid(id types.OrderID) (*types.CollateralBid, bool)
	IterateCollateralBids(mia types.AssetID, fn func(*types.CollateralBid) bool)

	// Per-MIA and per-asset control/dynamic data.
	GetBitassetData(asset types.AssetID) (*types.BitassetData, bool)
	PutBitassetData(b *types.BitassetData)
	GetDynamicData(asset types.AssetID) (*types.AssetDynamicData, bool)
	PutDynamicData(d *types.AssetDynamicData)

	// Balance primitive: signed adjustment, fails the
	// enclosing transaction if it would drive a balance negative.
	Balance(account string, asset types.AssetID) *num.Uint
	AdjustBalance(account string, asset types.AssetID, delta *num.Int) error

	// Begin opens a new undo frame; Commit/Rollback on the returned
	// Transaction close that frame. Recovery is uniformly transactional.
	Begin() *Transaction

	// Broker is the applied-operation sink.
	Broker() events.Sink
}

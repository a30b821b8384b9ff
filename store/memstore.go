package store

import (
	"github.com/google/btree"

	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/libs/num"
	"github.com/Freetsh/freetsh-core/types"
)

const btreeDegree = 32

type pairKey struct {
	sell, receive types.AssetID
}

type balanceKey struct {
	account string
	asset   types.AssetID
}

// memStore is the in-memory google/btree-backed reference Store.
type memStore struct {
	limitByID map[types.OrderID]*types.LimitOrder
	limitIdx  map[pairKey]*btree.BTree

	callByID map[types.OrderID]*types.CallOrder
	callIdx  map[types.AssetID]*btree.BTree

	settleByID map[types.OrderID]*types.ForceSettlementOrder
	settleIdx  map[types.AssetID]*btree.BTree

	bidByID map[types.OrderID]*types.CollateralBid
	bidIdx  map[types.AssetID]*btree.BTree

	bitasset map[types.AssetID]*types.BitassetData
	dynamic  map[types.AssetID]*types.AssetDynamicData
	balances map[balanceKey]*num.Uint

	broker events.Sink

	frames []*Transaction
}

// New returns an empty reference store sinking applied operations to sink.
func New(sink events.Sink) Store {
	return &memStore{
		limitByID:  map[types.OrderID]*types.LimitOrder{},
		limitIdx:   map[pairKey]*btree.BTree{},
		callByID:   map[types.OrderID]*types.CallOrder{},
		callIdx:    map[types.AssetID]*btree.BTree{},
		settleByID: map[types.OrderID]*types.ForceSettlementOrder{},
		settleIdx:  map[types.AssetID]*btree.BTree{},
		bidByID:    map[types.OrderID]*types.CollateralBid{},
		bidIdx:     map[types.AssetID]*btree.BTree{},
		bitasset:   map[types.AssetID]*types.BitassetData{},
		dynamic:    map[types.AssetID]*types.AssetDynamicData{},
		balances:   map[balanceKey]*num.Uint{},
		broker:     sink,
	}
}

func (s *memStore) Broker() events.Sink { return s.broker }

func (s *memStore) Begin() *Transaction {
	t := &Transaction{store: s}
	s.frames = append(s.frames, t)
	return t
}

func (s *memStore) popFrame(t *Transaction) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i] == t {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

func (s *memStore) record(undo func()) {
	if len(s.frames) == 0 {
		return
	}
	s.frames[len(s.frames)-1].record(undo)
}

// --- limit orders -----------------------------------------------------

type limitOrderItem struct {
	order *types.LimitOrder
}

// Less defines the by_price order: descending Price (Base/Quote, i.e. the
// most sell asset offered per unit received first, which is the cheapest
// ask), ascending id as the tiebreak, so Ascend() visits the best order
// first — the one an opposing taker would want to cross against, and the
// one that is "top of its own side" for the apply_order gate.
func (a limitOrderItem) Less(other btree.Item) bool {
	b := other.(limitOrderItem)
	cmp, _ := a.order.Price.Compare(b.order.Price)
	if cmp != 0 {
		return cmp > 0
	}
	return a.order.ID < b.order.ID
}

func (s *memStore) limitTree(sell, receive types.AssetID) *btree.BTree {
	k := pairKey{sell, receive}
	t, ok := s.limitIdx[k]
	if !ok {
		t = btree.New(btreeDegree)
		s.limitIdx[k] = t
	}
	return t
}

func (s *memStore) InsertLimitOrder(o *types.LimitOrder) {
	s.limitByID[o.ID] = o
	s.limitTree(o.SellAsset(), o.ReceiveAsset()).ReplaceOrInsert(limitOrderItem{o})
	s.record(func() {
		delete(s.limitByID, o.ID)
		s.limitTree(o.SellAsset(), o.ReceiveAsset()).Delete(limitOrderItem{o})
	})
}

func (s *memStore) RemoveLimitOrder(id types.OrderID) (*types.LimitOrder, bool) {
	o, ok := s.limitByID[id]
	if !ok {
		return nil, false
	}
	delete(s.limitByID, id)
	s.limitTree(o.SellAsset(), o.ReceiveAsset()).Delete(limitOrderItem{o})
	s.record(func() {
		s.limitByID[id] = o
		s.limitTree(o.SellAsset(), o.ReceiveAsset()).ReplaceOrInsert(limitOrderItem{o})
	})
	return o, true
}

func (s *memStore) GetLimitOrder(id types.OrderID) (*types.LimitOrder, bool) {
	o, ok := s.limitByID[id]
	return o, ok
}

func (s *memStore) TopOfBook(sell, receive types.AssetID) (*types.LimitOrder, bool) {
	var top *types.LimitOrder
	s.limitTree(sell, receive).Ascend(func(item btree.Item) bool {
		top = item.(limitOrderItem).order
		return false
	})
	return top, top != nil
}

func (s *memStore) IterateLimitOrders(sell, receive types.AssetID, fn func(*types.LimitOrder) bool) {
	s.limitTree(sell, receive).Ascend(func(item btree.Item) bool {
		return fn(item.(limitOrderItem).order)
	})
}

// --- call orders --------------------------------------------------------

type callOrderItem struct {
	order *types.CallOrder
}

func (a callOrderItem) Less(other btree.Item) bool {
	b := other.(callOrderItem)
	cmp, _ := a.order.CallPrice.Compare(b.order.CallPrice)
	if cmp != 0 {
		return cmp < 0
	}
	return a.order.ID < b.order.ID
}

func (s *memStore) callTree(mia types.AssetID) *btree.BTree {
	t, ok := s.callIdx[mia]
	if !ok {
		t = btree.New(btreeDegree)
		s.callIdx[mia] = t
	}
	return t
}

func (s *memStore) InsertCallOrder(o *types.CallOrder) {
	s.callByID[o.ID] = o
	s.callTree(o.Debt.Asset).ReplaceOrInsert(callOrderItem{o})
	s.record(func() {
		delete(s.callByID, o.ID)
		s.callTree(o.Debt.Asset).Delete(callOrderItem{o})
	})
}

func (s *memStore) RemoveCallOrder(id types.OrderID) (*types.CallOrder, bool) {
	o, ok := s.callByID[id]
	if !ok {
		return nil, false
	}
	delete(s.callByID, id)
	s.callTree(o.Debt.Asset).Delete(callOrderItem{o})
	s.record(func() {
		s.callByID[id] = o
		s.callTree(o.Debt.Asset).ReplaceOrInsert(callOrderItem{o})
	})
	return o, true
}

func (s *memStore) GetCallOrder(id types.OrderID) (*types.CallOrder, bool) {
	o, ok := s.callByID[id]
	return o, ok
}

// ReindexCallOrder removes and reinserts o using its current CallPrice.
// Must be called after mutating o.CallPrice in place: the by-price index
// has to be re-lower-bounded any time an operation reorders its key.
func (s *memStore) ReindexCallOrder(o *types.CallOrder) {
	tree := s.callTree(o.Debt.Asset)
	// The item was indexed under the old key, but the caller mutated o in
	// place, so a keyed Delete would search with the new CallPrice and miss
	// the stale entry. Instead the tree is rebuilt from one in-order walk
	// that leaves the stale entry out, and o is inserted under its new key.
	// No undo entry is recorded: the old key no longer exists to restore.
	rebuilt := btree.New(btreeDegree)
	tree.Ascend(func(item btree.Item) bool {
		if item.(callOrderItem).order.ID != o.ID {
			rebuilt.ReplaceOrInsert(item)
		}
		return true
	})
	rebuilt.ReplaceOrInsert(callOrderItem{o})
	s.callIdx[o.Debt.Asset] = rebuilt
}

func (s *memStore) LeastCollateralized(mia types.AssetID) (*types.CallOrder, bool) {
	var least *types.CallOrder
	s.callTree(mia).Ascend(func(item btree.Item) bool {
		least = item.(callOrderItem).order
		return false
	})
	return least, least != nil
}

func (s *memStore) IterateCallOrders(mia types.AssetID, fn func(*types.CallOrder) bool) {
	s.callTree(mia).Ascend(func(item btree.Item) bool {
		return fn(item.(callOrderItem).order)
	})
}

// --- force settlement orders -------------------------------------------

type settleOrderItem struct {
	order *types.ForceSettlementOrder
}

func (a settleOrderItem) Less(other btree.Item) bool {
	return a.order.ID < other.(settleOrderItem).order.ID
}

func (s *memStore) settleTree(mia types.AssetID) *btree.BTree {
	t, ok := s.settleIdx[mia]
	if !ok {
		t = btree.New(btreeDegree)
		s.settleIdx[mia] = t
	}
	return t
}

func (s *memStore) InsertForceSettlement(o *types.ForceSettlementOrder) {
	s.settleByID[o.ID] = o
	s.settleTree(o.Balance.Asset).ReplaceOrInsert(settleOrderItem{o})
	s.record(func() {
		delete(s.settleByID, o.ID)
		s.settleTree(o.Balance.Asset).Delete(settleOrderItem{o})
	})
}

func (s *memStore) RemoveForceSettlement(id types.OrderID) (*types.ForceSettlementOrder, bool) {
	o, ok := s.settleByID[id]
	if !ok {
		return nil, false
	}
	delete(s.settleByID, id)
	s.settleTree(o.Balance.Asset).Delete(settleOrderItem{o})
	s.record(func() {
		s.settleByID[id] = o
		s.settleTree(o.Balance.Asset).ReplaceOrInsert(settleOrderItem{o})
	})
	return o, true
}

func (s *memStore) GetForceSettlement(id types.OrderID) (*types.ForceSettlementOrder, bool) {
	o, ok := s.settleByID[id]
	return o, ok
}

func (s *memStore) IterateForceSettlements(mia types.AssetID, fn func(*types.ForceSettlementOrder) bool) {
	s.settleTree(mia).Ascend(func(item btree.Item) bool {
		return fn(item.(settleOrderItem).order)
	})
}

// --- collateral bids -----------------------------------------------------

type bidItem struct {
	bid *types.CollateralBid
}

func (a bidItem) Less(other btree.Item) bool {
	b := other.(bidItem)
	cmp, _ := a.bid.InvSwanPrice.Compare(b.bid.InvSwanPrice)
	if cmp != 0 {
		return cmp < 0
	}
	return a.bid.ID < b.bid.ID
}

func (s *memStore) bidTree(mia types.AssetID) *btree.BTree {
	t, ok := s.bidIdx[mia]
	if !ok {
		t = btree.New(btreeDegree)
		s.bidIdx[mia] = t
	}
	return t
}

func (s *memStore) InsertCollateralBid(b *types.CollateralBid) {
	s.bidByID[b.ID] = b
	s.bidTree(b.InvSwanPrice.Quote.Asset).ReplaceOrInsert(bidItem{b})
	s.record(func() {
		delete(s.bidByID, b.ID)
		s.bidTree(b.InvSwanPrice.Quote.Asset).Delete(bidItem{b})
	})
}

func (s *memStore) RemoveCollateralBid(id types.OrderID) (*types.CollateralBid, bool) {
	b, ok := s.bidByID[id]
	if !ok {
		return nil, false
	}
	delete(s.bidByID, id)
	s.bidTree(b.InvSwanPrice.Quote.Asset).Delete(bidItem{b})
	s.record(func() {
		s.bidByID[id] = b
		s.bidTree(b.InvSwanPrice.Quote.Asset).ReplaceOrInsert(bidItem{b})
	})
	return b, true
}

func (s *memStore) IterateCollateralBids(mia types.AssetID, fn func(*types.CollateralBid) bool) {
	s.bidTree(mia).Ascend(func(item btree.Item) bool {
		return fn(item.(bidItem).bid)
	})
}

// --- bitasset / dynamic data ---------------------------------------------

func (s *memStore) GetBitassetData(asset types.AssetID) (*types.BitassetData, bool) {
	b, ok := s.bitasset[asset]
	return b, ok
}

func (s *memStore) PutBitassetData(b *types.BitassetData) {
	old, had := s.bitasset[b.Asset]
	s.bitasset[b.Asset] = b
	s.record(func() {
		if had {
			s.bitasset[b.Asset] = old
		} else {
			delete(s.bitasset, b.Asset)
		}
	})
}

func (s *memStore) GetDynamicData(asset types.AssetID) (*types.AssetDynamicData, bool) {
	d, ok := s.dynamic[asset]
	return d, ok
}

func (s *memStore) PutDynamicData(d *types.AssetDynamicData) {
	old, had := s.dynamic[d.Asset]
	s.dynamic[d.Asset] = d
	s.record(func() {
		if had {
			s.dynamic[d.Asset] = old
		} else {
			delete(s.dynamic, d.Asset)
		}
	})
}

// --- balances -------------------------------------------------------------

func (s *memStore) Balance(account string, asset types.AssetID) *num.Uint {
	b, ok := s.balances[balanceKey{account, asset}]
	if !ok {
		return num.UintZero()
	}
	return b.Clone()
}

// AdjustBalance applies a signed delta, failing (and leaving state
// untouched) if a debit would drive the balance negative.
func (s *memStore) AdjustBalance(account string, asset types.AssetID, delta *num.Int) error {
	key := balanceKey{account, asset}
	cur, ok := s.balances[key]
	if !ok {
		cur = num.UintZero()
	}
	var next *num.Uint
	if delta.IsNegative() {
		amt := delta.Abs()
		if cur.LT(amt) {
			return types.ErrBalanceInsufficient
		}
		next = num.UintZero().Sub(cur, amt)
	} else {
		next = num.UintZero().Add(cur, delta.Abs())
	}
	s.balances[key] = next
	s.record(func() {
		if ok {
			s.balances[key] = cur
		} else {
			delete(s.balances, key)
		}
	})
	return nil
}

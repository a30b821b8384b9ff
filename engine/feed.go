package engine

import (
	"github.com/Freetsh/freetsh-core/metrics"
	"github.com/Freetsh/freetsh-core/types"
)

// PublishFeed records producer's price observation for mia, recomputes
// the aggregated feed, and writes it into the MIA's BitassetData — the
// only place the matching core actually reads a feed from. A feed move
// can make an existing call order liquidatable, so this re-triggers a
// margin-call sweep. matched reports whether that sweep executed a fill.
func (e *Engine) PublishFeed(mia types.AssetID, producer string, f types.Feed) (matched bool, err error) {
	defer metrics.NewTimeCounter(mia.String(), "engine", "PublishFeed").EngineTimeCounterAdd()

	bit, err := e.bitasset(mia)
	if err != nil {
		return false, err
	}

	e.feed.Submit(mia, producer, f)
	current, ok := e.feed.CurrentFeed(mia)
	if !ok {
		return false, nil
	}
	bit.CurrentFeed = current
	bit.HasFeed = true
	e.st.PutBitassetData(bit)

	return e.match.CheckCallOrders(mia, false)
}

// WithdrawFeed removes producer's submission for mia, e.g. when it goes
// stale, and recomputes the aggregated feed.
func (e *Engine) WithdrawFeed(mia types.AssetID, producer string) error {
	bit, err := e.bitasset(mia)
	if err != nil {
		return err
	}

	e.feed.Withdraw(mia, producer)
	current, ok := e.feed.CurrentFeed(mia)
	bit.CurrentFeed = current
	bit.HasFeed = ok
	e.st.PutBitassetData(bit)
	return nil
}

// Package feed aggregates price submissions from multiple feed producers
// into the single per-MIA Feed the matching core reads. The matching core
// only ever reads the aggregated result; producing it is this package's
// job.
package feed

import (
	"sort"

	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/types"
)

// Engine stores the latest submission from each producer per MIA and
// derives the active feed as the median of those submissions, the way a
// risk engine reduces many order-book samples into one summary figure.
type Engine struct {
	log *logging.Logger
	cfg Config

	byAsset map[types.AssetID]map[string]types.Feed
}

func New(log *logging.Logger, cfg Config) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log:     log,
		cfg:     cfg,
		byAsset: map[types.AssetID]map[string]types.Feed{},
	}
}

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

// IsPostFork reports whether ts is at or after the configured fork point.
func (e *Engine) IsPostFork(ts int64) bool {
	return ts >= e.cfg.ForkTimestamp
}

// Submit records producer's price observation for mia, overwriting any
// prior submission from the same producer.
func (e *Engine) Submit(mia types.AssetID, producer string, f types.Feed) {
	producers, ok := e.byAsset[mia]
	if !ok {
		producers = map[string]types.Feed{}
		e.byAsset[mia] = producers
	}
	producers[producer] = f
}

// Withdraw removes producer's submission for mia, e.g. when it goes stale.
func (e *Engine) Withdraw(mia types.AssetID, producer string) {
	delete(e.byAsset[mia], producer)
}

// CurrentFeed returns the median of mia's active submissions, ordered by
// settlement price, with the median entry's MCR/MSSR carried through
// unchanged. ok is false when there are no active submissions.
func (e *Engine) CurrentFeed(mia types.AssetID) (types.Feed, bool) {
	producers := e.byAsset[mia]
	if len(producers) == 0 {
		return types.Feed{}, false
	}
	feeds := make([]types.Feed, 0, len(producers))
	for _, f := range producers {
		feeds = append(feeds, f)
	}
	sort.Slice(feeds, func(i, j int) bool {
		return feeds[i].SettlementPrice.LessThan(feeds[j].SettlementPrice)
	})
	return feeds[len(feeds)/2], true
}

// MaxShortSqueezePrice is a convenience wrapper over CurrentFeed(mia)'s own
// accessor, matching the read shape the matching core expects from its
// feed-provider collaborator.
func (e *Engine) MaxShortSqueezePrice(mia types.AssetID) (types.Price, bool) {
	f, ok := e.CurrentFeed(mia)
	if !ok {
		return types.Price{}, false
	}
	return f.MaxShortSqueezePrice(), true
}

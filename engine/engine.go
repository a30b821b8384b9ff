// Package engine is the single entry point a host process talks to: it
// owns the fee, feed and matching sub-engines and the object store they
// all share, and exposes every mutating operation as one flat method set
// so a caller never has to reach into a sub-engine or a particular
// market's book directly.
package engine

import (
	"github.com/Freetsh/freetsh-core/fee"
	"github.com/Freetsh/freetsh-core/feed"
	"github.com/Freetsh/freetsh-core/libs/idgen"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/matching"
	"github.com/Freetsh/freetsh-core/store"
)

// Engine wires the sub-engines together against one Store. It holds no
// per-market state: the Store already partitions every index by asset
// pair or by MIA, so one Engine serves every market a host creates.
type Engine struct {
	log *logging.Logger
	cfg Config

	st  store.Store
	ids *idgen.Generator

	fee   *fee.Engine
	feed  *feed.Engine
	match *matching.Engine
}

func New(log *logging.Logger, cfg Config, st store.Store, ids *idgen.Generator) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	feeEngine := fee.New(log, cfg.Fee)
	feedEngine := feed.New(log, cfg.Feed)
	matchEngine := matching.New(log, cfg.Matching, st, feeEngine, feedEngine, ids)

	return &Engine{
		log:   log,
		cfg:   cfg,
		st:    st,
		ids:   ids,
		fee:   feeEngine,
		feed:  feedEngine,
		match: matchEngine,
	}
}

// ReloadConf pushes a new Config down to every sub-engine.
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
	e.fee.ReloadConf(cfg.Fee)
	e.feed.ReloadConf(cfg.Feed)
	e.match.ReloadConf(cfg.Matching)
}

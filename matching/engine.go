// Package matching implements the order-matching state machine: pairwise
// fills, the 2-bit match result, limit-order application against the book,
// the margin-call sweep, and global settlement/revival. Every mutation
// flows through a store.Store so undo is available if a surrounding
// transaction aborts, and every user-visible change emits exactly one
// applied-operation record on the store's events.Sink.
package matching

import (
	"github.com/Freetsh/freetsh-core/events"
	"github.com/Freetsh/freetsh-core/fee"
	"github.com/Freetsh/freetsh-core/feed"
	"github.com/Freetsh/freetsh-core/libs/idgen"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/store"
)

// Engine is the per-process matching core. It holds no per-market state of
// its own — every MIA's book, call orders and bitasset record live in the
// Store — so one Engine serves every market.
type Engine struct {
	log  *logging.Logger
	cfg  Config
	st   store.Store
	fee  *fee.Engine
	feed *feed.Engine
	ids  *idgen.Generator
}

func New(log *logging.Logger, cfg Config, st store.Store, feeEngine *fee.Engine, feedEngine *feed.Engine, ids *idgen.Generator) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log:  log,
		cfg:  cfg,
		st:   st,
		fee:  feeEngine,
		feed: feedEngine,
		ids:  ids,
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

func (e *Engine) emit(ev events.Event) {
	if b := e.st.Broker(); b != nil {
		b.Send(ev)
	}
}

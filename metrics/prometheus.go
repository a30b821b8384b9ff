// Package metrics wraps a small set of Prometheus counters for the
// matching core's hot paths. Every call site uses
// NewTimeCounter/EngineTimeCounterAdd so the
// instrumentation never shows up as a branch in the matching logic itself.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var engineTime = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freetsh_engine_time_seconds_total",
		Help: "Cumulative time spent inside a matching-core entry point.",
	},
	[]string{"market", "engine", "fn"},
)

var engineCalls = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freetsh_engine_calls_total",
		Help: "Number of calls to a matching-core entry point.",
	},
	[]string{"market", "engine", "fn"},
)

func init() {
	prometheus.MustRegister(engineTime, engineCalls)
}

// TimeCounter accumulates the wall-clock time spent in one call.
type TimeCounter struct {
	market, engine, fn string
	start              time.Time
}

// NewTimeCounter starts a timer for a (market, engine, fn) triple. market
// may be "-" when the call is not scoped to a single MIA.
func NewTimeCounter(market, engine, fn string) *TimeCounter {
	return &TimeCounter{market: market, engine: engine, fn: fn, start: time.Now()}
}

// EngineTimeCounterAdd records the elapsed time and increments the call
// counter. Safe to call even if Prometheus registration failed in tests.
func (t *TimeCounter) EngineTimeCounterAdd() {
	if t == nil {
		return
	}
	elapsed := time.Since(t.start).Seconds()
	engineTime.WithLabelValues(t.market, t.engine, t.fn).Add(elapsed)
	engineCalls.WithLabelValues(t.market, t.engine, t.fn).Inc()
}

package fee

import (
	"github.com/Freetsh/freetsh-core/config/encoding"
	"github.com/Freetsh/freetsh-core/logging"
)

// namedLogger is the identifier for package and should ideally match the
// package name; this is simply emitted as a hierarchical label.
const namedLogger = "fee"

// Config holds the fee engine's operator-tunable behaviour. Loading it from
// a file or flag set is outside this core's scope; callers construct one
// directly or embed it in their own configuration tree.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// CancellationFeeReserve is the flat reserve-equivalent amount charged
	// by calculate_fee(limit_order_cancel_op), capped at the order's
	// deferred fee when actually applied.
	CancellationFeeReserve uint64
}

// NewDefaultConfig returns sane defaults: info logging, no cancellation fee.
func NewDefaultConfig() Config {
	return Config{
		Level:                  encoding.LogLevel{Level: logging.InfoLevel},
		CancellationFeeReserve: 0,
	}
}

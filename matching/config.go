package matching

import (
	"github.com/Freetsh/freetsh-core/config/encoding"
	"github.com/Freetsh/freetsh-core/logging"
)

const namedLogger = "matching"

// Config holds the matching engine's operator-tunable behaviour.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// BlackSwanEnabled gates whether an undercollateralized payout is
	// resolved by invoking global settlement (true) or propagated to the
	// caller as a BlackSwanError (false).
	BlackSwanEnabled bool
}

func NewDefaultConfig() Config {
	return Config{
		Level:            encoding.LogLevel{Level: logging.InfoLevel},
		BlackSwanEnabled: true,
	}
}

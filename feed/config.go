package feed

import (
	"github.com/Freetsh/freetsh-core/config/encoding"
	"github.com/Freetsh/freetsh-core/logging"
)

const namedLogger = "feed"

// Config holds the feed engine's operator-tunable behaviour.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// ForkTimestamp gates the algorithm variants the matching core selects
	// via the feed provider's "hard-fork-time constants" collaborator
	// point. Opaque: callers compare their own clock reading against it.
	ForkTimestamp int64
}

func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}

package engine

import (
	"github.com/Freetsh/freetsh-core/config/encoding"
	"github.com/Freetsh/freetsh-core/fee"
	"github.com/Freetsh/freetsh-core/feed"
	"github.com/Freetsh/freetsh-core/logging"
	"github.com/Freetsh/freetsh-core/matching"
)

const namedLogger = "engine"

// Config aggregates every sub-engine's configuration under one tree, the
// way a host process loads one TOML file and distributes its sections.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	Matching matching.Config
	Fee      fee.Config
	Feed     feed.Config
}

func NewDefaultConfig() Config {
	return Config{
		Level:    encoding.LogLevel{Level: logging.InfoLevel},
		Matching: matching.NewDefaultConfig(),
		Fee:      fee.NewDefaultConfig(),
		Feed:     feed.NewDefaultConfig(),
	}
}

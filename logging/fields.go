package logging

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Field re-exports zap.Field so callers never need to import zap directly.
type Field = zap.Field

func String(key, val string) Field   { return zap.String(key, val) }
func Int(key string, val int) Field  { return zap.Int(key, val) }
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}
func Uint64(key string, val uint64) Field { return zap.Uint64(key, val) }
func Bool(key string, val bool) Field     { return zap.Bool(key, val) }
func Error(err error) Field               { return zap.Error(err) }

// Stringer accepts any fmt.Stringer, used for num.Uint / num.Price values
// so engines never have to call .String() at every call site.
func Stringer(key string, val fmt.Stringer) Field {
	return zap.String(key, val.String())
}

func Decimal(key string, val decimal.Decimal) Field {
	return zap.String(key, val.String())
}

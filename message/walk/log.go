package walk

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger sets the logger used to report parts that could not be parsed and
// were treated as leaves. Nothing is logged by default.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// loggerFor prefers the logger attached to ctx and falls back to the package
// logger.
func loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return logger.Load()
}

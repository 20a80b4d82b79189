package length

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger installs the sink that receives truncation diagnostics.
// A nil logger disables them, which is the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Truncated records that a truncating constructor dropped data to fit
// typeName. kind names the collection ("array", "string").
func Truncated(kind, typeName string, from, to int) {
	l := logger.Load()
	if l == nil {
		return
	}
	l.LogAttrs(context.Background(), slog.LevelWarn, "truncated input to fit length type",
		slog.String("kind", kind),
		slog.String("type", typeName),
		slog.Int("from", from),
		slog.Int("to", to),
	)
}

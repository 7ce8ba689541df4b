package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals are the signals that cancel the context returned by WithSignals.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WithSignals returns a copy of parent that is cancelled on SIGINT or
// SIGTERM. stop must be called to restore default signal handling.
func WithSignals(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, Signals...)
}

// Interrupted reports whether ctx ended because of a signal rather than
// because its parent was cancelled.
func Interrupted(ctx context.Context, parent context.Context) bool {
	return ctx.Err() != nil && parent.Err() == nil
}

// Package shutdown ties a command's context to process termination
// signals, so that an interrupted invocation abandons its in-flight ETAPI
// request instead of being killed mid-write.
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
package shutdown

// Package sink defines the byte-keyed record writer consumed by the
// outbound adapter, and hosts its driver implementations.
//
// A sink accepts (byte-key, byte-value) records for a named
// destination. The adapter issues exactly one write per stream element;
// batching, retry, and backoff are never performed at this layer.
package sink

import (
	"context"
	"log/slog"
)

// Sink writes byte-keyed records to a named destination.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Write appends one key/value record to the named destination.
	Write(ctx context.Context, destination string, key, value []byte) error

	// Close releases the underlying producer resources.
	Close() error
}

// Logger returns a named logger for sink drivers.
func Logger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

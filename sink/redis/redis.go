// Package redis provides a Redis Streams-based sink implementation.
//
// Each record becomes one XADD entry with key and value fields. The
// sink accepts a pre-initialized client; consumer groups, claiming, and
// trimming policy stay with the stream's consumers.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"github.com/rbaliyan/binder/sink"
)

// Client defines the interface for Redis client operations.
// Supports *redis.Client, *redis.ClusterClient, and redis.UniversalClient.
type Client interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Errors
var (
	ErrClientRequired = errors.New("redis client is required")
	ErrClosed         = errors.New("redis sink is closed")
)

// Entry field names used for XADD records.
const (
	KeyField   = "key"
	ValueField = "value"
)

// Sink implements sink.Sink using Redis Streams.
type Sink struct {
	status       int32
	client       Client
	streamPrefix string
	maxLen       int64 // approximate MAXLEN trim (0 = unlimited)
	logger       *slog.Logger
}

// New creates a Redis sink from a pre-initialized client.
// Destinations map to streams, optionally namespaced via
// WithStreamPrefix.
func New(client Client, opts ...Option) (*Sink, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	s := &Sink{
		status: 1,
		client: client,
		logger: sink.Logger("sink>redis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Write appends one record to the destination stream.
func (s *Sink) Write(ctx context.Context, destination string, key, value []byte) error {
	if atomic.LoadInt32(&s.status) == 0 {
		return ErrClosed
	}
	values := map[string]any{ValueField: value}
	if key != nil {
		values[KeyField] = key
	}
	args := &redis.XAddArgs{
		Stream: s.streamPrefix + destination,
		Values: values,
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	id, err := s.client.XAdd(ctx, args).Result()
	if err != nil {
		return err
	}
	s.logger.Debug("record appended", "stream", args.Stream, "id", id)
	return nil
}

// Close marks the sink closed. The client stays open; it belongs to
// the caller.
func (s *Sink) Close() error {
	atomic.StoreInt32(&s.status, 0)
	return nil
}

// Compile-time interface check
var _ sink.Sink = (*Sink)(nil)

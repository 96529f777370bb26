// Package nats provides a NATS-based sink implementation.
//
// NATS subjects carry no native record key, so the key travels in a
// message header and is recovered by key-aware consumers. Publishes are
// fire-and-forget at this layer; use WithFlush for synchronous
// confirmation per write.
package nats

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/nats-io/nats.go"
	"github.com/rbaliyan/binder/sink"
)

// Errors
var (
	ErrConnRequired = errors.New("nats connection is required")
	ErrClosed       = errors.New("nats sink is closed")
)

// KeyHeader is the NATS header carrying the record key.
const KeyHeader = "Binder-Key"

// Sink implements sink.Sink using NATS publish.
type Sink struct {
	status        int32
	conn          *nats.Conn
	subjectPrefix string
	flush         bool
	logger        *slog.Logger
}

// New creates a NATS sink from a pre-initialized connection.
// Destinations map to subjects, optionally namespaced via
// WithSubjectPrefix.
func New(conn *nats.Conn, opts ...Option) (*Sink, error) {
	if conn == nil {
		return nil, ErrConnRequired
	}
	s := &Sink{
		status: 1,
		conn:   conn,
		logger: sink.Logger("sink>nats"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Write publishes one record to the destination subject.
func (s *Sink) Write(ctx context.Context, destination string, key, value []byte) error {
	if atomic.LoadInt32(&s.status) == 0 {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &nats.Msg{
		Subject: s.subjectPrefix + destination,
		Data:    value,
	}
	if key != nil {
		msg.Header = nats.Header{KeyHeader: []string{string(key)}}
	}
	if err := s.conn.PublishMsg(msg); err != nil {
		return err
	}
	s.logger.Debug("record published", "subject", msg.Subject)
	if s.flush {
		return s.conn.FlushWithContext(ctx)
	}
	return nil
}

// Close marks the sink closed. The connection stays open; it belongs
// to the caller.
func (s *Sink) Close() error {
	if !atomic.CompareAndSwapInt32(&s.status, 1, 0) {
		return nil
	}
	return s.conn.Flush()
}

// Compile-time interface check
var _ sink.Sink = (*Sink)(nil)

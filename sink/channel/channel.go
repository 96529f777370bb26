// Package channel provides an in-memory sink implementation.
//
// Records are collected per destination in process memory. Use it for
// tests and single-process wiring; nothing is persisted.
package channel

import (
	"context"
	"errors"
	"sync"

	"github.com/rbaliyan/binder/sink"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("channel sink is closed")

// Record is one captured key/value record.
type Record struct {
	Key   []byte
	Value []byte
}

// Sink implements sink.Sink in process memory.
type Sink struct {
	mu     sync.Mutex
	closed bool
	byDest map[string][]Record
}

// New creates an in-memory sink.
func New() *Sink {
	return &Sink{byDest: make(map[string][]Record)}
}

// Write appends one record to the named destination.
func (s *Sink) Write(_ context.Context, destination string, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.byDest[destination] = append(s.byDest[destination], Record{Key: key, Value: value})
	return nil
}

// Records returns a copy of the records written to destination, in
// write order.
func (s *Sink) Records(destination string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.byDest[destination]
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Close marks the sink closed; further writes fail with ErrClosed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Compile-time interface check
var _ sink.Sink = (*Sink)(nil)

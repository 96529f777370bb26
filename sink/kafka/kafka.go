// Package kafka provides a Kafka-based sink implementation.
//
// Records are produced synchronously with a sarama SyncProducer so a
// write error surfaces for the exact element that caused it. The sink
// accepts a pre-initialized client; connection management, partition
// assignment, and topic topology stay with the caller.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/IBM/sarama"
	"github.com/rbaliyan/binder/sink"
)

// Errors
var (
	ErrClientRequired = errors.New("kafka client is required")
	ErrProducerFailed = errors.New("failed to create kafka producer")
	ErrClosed         = errors.New("kafka sink is closed")
)

// Sink implements sink.Sink using Kafka.
type Sink struct {
	status      int32
	client      sarama.Client
	producer    sarama.SyncProducer
	topicPrefix string
	logger      *slog.Logger
}

// New creates a Kafka sink from a pre-initialized client.
// Destinations map to topics, optionally namespaced via WithTopicPrefix.
func New(client sarama.Client, opts ...Option) (*Sink, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	s := &Sink{
		status: 1,
		client: client,
		logger: sink.Logger("sink>kafka"),
	}
	for _, opt := range opts {
		opt(s)
	}

	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		return nil, errors.Join(ErrProducerFailed, err)
	}
	s.producer = producer
	return s, nil
}

// Write produces one record to the destination topic. The record key
// becomes the Kafka message key, preserving whatever per-key ordering
// the topic guarantees.
func (s *Sink) Write(ctx context.Context, destination string, key, value []byte) error {
	if atomic.LoadInt32(&s.status) == 0 {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topicPrefix + destination,
		Value: sarama.ByteEncoder(value),
	}
	if key != nil {
		msg.Key = sarama.ByteEncoder(key)
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	s.logger.Debug("record produced",
		"topic", msg.Topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close shuts down the producer. The client stays open; it belongs to
// the caller.
func (s *Sink) Close() error {
	if !atomic.CompareAndSwapInt32(&s.status, 1, 0) {
		return nil
	}
	return s.producer.Close()
}

// Compile-time interface check
var _ sink.Sink = (*Sink)(nil)

package kafka

import "log/slog"

// Option configures the Kafka sink
type Option func(*Sink)

// WithTopicPrefix namespaces destination topics, e.g. "bindings.".
func WithTopicPrefix(prefix string) Option {
	return func(s *Sink) {
		s.topicPrefix = prefix
	}
}

// WithLogger sets the sink logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

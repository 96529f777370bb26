package nats

import "log/slog"

// Option configures the NATS sink
type Option func(*Sink)

// WithSubjectPrefix namespaces destination subjects, e.g. "bindings.".
func WithSubjectPrefix(prefix string) Option {
	return func(s *Sink) {
		s.subjectPrefix = prefix
	}
}

// WithFlush flushes the connection after every write, trading
// throughput for per-element write confirmation.
func WithFlush(v bool) Option {
	return func(s *Sink) {
		s.flush = v
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

package redis

import "log/slog"

// Option configures the Redis sink
type Option func(*Sink)

// WithStreamPrefix namespaces destination streams, e.g. "bindings.".
func WithStreamPrefix(prefix string) Option {
	return func(s *Sink) {
		s.streamPrefix = prefix
	}
}

// WithMaxLen trims destination streams to approximately n entries on
// write (XADD MAXLEN ~). 0 disables trimming.
func WithMaxLen(n int64) Option {
	return func(s *Sink) {
		if n > 0 {
			s.maxLen = n
		}
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

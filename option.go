package binder

import (
	"log/slog"

	"github.com/rbaliyan/binder/payload"
)

// adapterConfig holds construction-time configuration shared by the
// outbound and inbound adapters. Resolved once; immutable afterwards.
type adapterConfig struct {
	embedHeaders   bool
	extraHeaders   []string
	encoder        payload.Encoder
	converter      Converter
	logger         *slog.Logger
	onError        func(error)
	metricsEnabled bool
	tracingEnabled bool
}

// defaultErrorHandler default error handler
func defaultErrorHandler(error) {}

func newAdapterConfig() *adapterConfig {
	return &adapterConfig{
		embedHeaders:   true,
		encoder:        payload.Default(),
		converter:      CodecConverter{},
		logger:         slog.Default().With("component", "binder"),
		onError:        defaultErrorHandler,
		metricsEnabled: true,
		tracingEnabled: true,
	}
}

// Option configures an adapter.
type Option func(*adapterConfig)

// WithEmbeddedHeaders enables or disables header embedding for the
// binding. When disabled the serialized payload is emitted as-is and
// headers are expected to travel via an out-of-band transport
// mechanism.
func WithEmbeddedHeaders(v bool) Option {
	return func(c *adapterConfig) {
		c.embedHeaders = v
	}
}

// WithHeaders adds header names to embed beyond the standard set.
func WithHeaders(names ...string) Option {
	return func(c *adapterConfig) {
		c.extraHeaders = append(c.extraHeaders, names...)
	}
}

// WithEncoder sets the payload encoder for structured payloads.
func WithEncoder(enc payload.Encoder) Option {
	return func(c *adapterConfig) {
		if enc != nil {
			c.encoder = enc
		}
	}
}

// WithConverter sets the inbound payload converter.
func WithConverter(conv Converter) Option {
	return func(c *adapterConfig) {
		if conv != nil {
			c.converter = conv
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *adapterConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithErrorHandler sets the callback invoked with per-element failures
// surfaced while driving a stream. Failures are scoped to the single
// offending element and never abort the rest of the stream.
func WithErrorHandler(fn func(error)) Option {
	return func(c *adapterConfig) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// WithMetrics enables/disables OpenTelemetry metrics.
func WithMetrics(v bool) Option {
	return func(c *adapterConfig) {
		c.metricsEnabled = v
	}
}

// WithTracing enables/disables OpenTelemetry tracing.
func WithTracing(v bool) Option {
	return func(c *adapterConfig) {
		c.tracingEnabled = v
	}
}

package binder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rbaliyan/binder/sink"
)

// ErrSinkRequired is returned when no sink is provided.
var ErrSinkRequired = errors.New("sink is required")

// instrumentationName names the adapter's otel meter and tracer.
const instrumentationName = "binder"

// OutboundAdapter turns typed messages into byte-keyed records and
// emits them on an external byte-keyed channel. Each message either
// fully becomes a valid record or it does not reach the channel; there
// is no partial emission.
//
// The adapter holds no per-message state and is safe to invoke
// concurrently on disjoint elements.
type OutboundAdapter struct {
	resolver       *ContentTypeResolver
	codec          *PayloadCodec
	sink           sink.Sink
	embed          bool
	headers        []string
	logger         *slog.Logger
	onError        func(error)
	metricsEnabled bool
	tracingEnabled bool
}

// NewOutboundAdapter creates an adapter emitting to s. Header embedding
// is enabled by default; the embed allow-list is the standard header
// set plus any WithHeaders extras, fixed for the adapter's lifetime.
func NewOutboundAdapter(s sink.Sink, opts ...Option) (*OutboundAdapter, error) {
	if s == nil {
		return nil, ErrSinkRequired
	}
	cfg := newAdapterConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &OutboundAdapter{
		resolver:       NewContentTypeResolver(),
		codec:          NewPayloadCodec(cfg.encoder),
		sink:           s,
		embed:          cfg.embedHeaders,
		headers:        headersToEmbed(cfg.extraHeaders),
		logger:         cfg.logger,
		onError:        cfg.onError,
		metricsEnabled: cfg.metricsEnabled,
		tracingEnabled: cfg.tracingEnabled,
	}, nil
}

// Transform maps one (key, value) stream element onto one byte-keyed
// record: content type is resolved, the payload serialized, and headers
// embedded when embedding is enabled. The key passes through unchanged.
//
// Transform is a pure per-element function; any failure returns
// ErrIllegalMessage joined with the cause and leaves no partial effect.
func (a *OutboundAdapter) Transform(key, value any) (Record, error) {
	k, err := keyBytes(key)
	if err != nil {
		return Record{}, err
	}
	switch v := value.(type) {
	case *Message:
		values, err := a.serialize(v)
		if err != nil {
			return Record{}, errors.Join(ErrIllegalMessage, err)
		}
		if a.embed {
			data, err := EmbedHeaders(values, a.headers...)
			if err != nil {
				if !errors.Is(err, ErrIllegalMessage) {
					err = errors.Join(ErrIllegalMessage, err)
				}
				return Record{}, err
			}
			return Record{Key: k, Value: data}, nil
		}
		return Record{Key: k, Value: values.Payload.([]byte)}, nil
	case []byte:
		if a.embed {
			return Record{}, fmt.Errorf("%w: expected *binder.Message value, got raw bytes", ErrIllegalMessage)
		}
		return Record{Key: k, Value: v}, nil
	default:
		return Record{}, fmt.Errorf("%w: unsupported value type %T", ErrIllegalMessage, value)
	}
}

// serialize resolves the content type and turns the payload into bytes,
// producing the working copy that gets embedded or emitted. When the
// resolved content type differs from the one the application declared,
// the declared one is retained under originalContentType.
func (a *OutboundAdapter) serialize(msg *Message) (*MessageValues, error) {
	values := NewMessageValues(msg)
	original := values.Headers.GetString(HeaderContentType)

	contentType, err := a.resolver.Resolve(values.Payload, original)
	if err != nil {
		return nil, err
	}
	data, err := a.codec.ToBytes(values.Payload)
	if err != nil {
		return nil, err
	}
	values.Payload = data
	// The wire format only carries primitive-shaped values, so the
	// content type travels in its canonical string form.
	values.Headers[HeaderContentType] = contentType.String()
	if original != "" && original != contentType.String() {
		values.Headers[HeaderOriginalContentType] = original
	}
	return values, nil
}

// Bind registers the adapter over stream and issues exactly one sink
// write per element to destination, preserving order and cardinality.
// Per-element failures are reported to the error handler and do not
// stop the remaining elements. Bind returns when the stream is
// exhausted or the context is cancelled.
func (a *OutboundAdapter) Bind(ctx context.Context, destination string, stream Stream) error {
	for key, value := range stream {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.emit(ctx, destination, key, value); err != nil {
			a.logger.Debug("dropping element",
				"destination", destination,
				"error", err,
			)
			a.count(ctx, "binder.outbound.errors", "Total elements that failed to emit", destination)
			a.onError(err)
		}
	}
	return nil
}

func (a *OutboundAdapter) emit(ctx context.Context, destination string, key, value any) error {
	rec, err := a.Transform(key, value)
	if err != nil {
		return err
	}

	if a.tracingEnabled {
		tracer := otel.Tracer(instrumentationName)
		var span trace.Span
		ctx, span = tracer.Start(ctx, destination+".write",
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(attribute.String("messaging.destination", destination)))
		defer span.End()
	}

	if err := a.sink.Write(ctx, destination, rec.Key, rec.Value); err != nil {
		return err
	}
	a.count(ctx, "binder.outbound.records", "Total records written to the sink", destination)
	return nil
}

func (a *OutboundAdapter) count(ctx context.Context, name, description, destination string) {
	if !a.metricsEnabled {
		return
	}
	meter := otel.Meter(instrumentationName)
	counter, _ := meter.Int64Counter(name, metric.WithDescription(description))
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("destination", destination)))
}

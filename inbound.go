package binder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// messageType is the generic message shape; declaring it as the target
// means the caller wants the envelope itself.
var messageType = reflect.TypeOf((*Message)(nil))

// Inbound adapts stream elements to the declared value type T so the
// destination handler receives values of exactly that type instead of
// raw envelopes. The target type is fixed once at construction, never
// re-derived per element.
//
// Adaptation is purely per-element and stateless: non-message elements
// pass through, a message payload already of type T is returned
// directly, and anything else goes through the converter.
type Inbound[T any] struct {
	target         reflect.Type
	passthrough    bool
	convert        Converter
	logger         *slog.Logger
	onError        func(error)
	metricsEnabled bool
}

// NewInbound creates an inbound adapter for the declared type T.
// The default converter decodes byte payloads via the payload registry;
// override it with WithConverter.
func NewInbound[T any](opts ...Option) *Inbound[T] {
	cfg := newAdapterConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	target := reflect.TypeOf((*T)(nil)).Elem()
	return &Inbound[T]{
		target:         target,
		passthrough:    target == messageType,
		convert:        cfg.converter,
		logger:         cfg.logger,
		onError:        cfg.onError,
		metricsEnabled: cfg.metricsEnabled,
	}
}

// AdaptValue coerces one stream value to T.
//
// A non-message value is assumed already of a compatible shape and is
// returned unchanged, or fails with ErrConversion when it cannot
// satisfy the typed return; a message whose payload already satisfies T
// yields that exact payload with no converter invocation; otherwise the
// converter runs. Failures return ErrConversion.
func (a *Inbound[T]) AdaptValue(value any) (T, error) {
	msg, ok := value.(*Message)
	if !ok {
		v, ok := value.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("%w: element type %T is not assignable to %s", ErrConversion, value, a.target)
		}
		return v, nil
	}
	return a.adaptMessage(msg)
}

// adaptMessage coerces one message to T: the envelope itself when T is
// the message shape, the payload directly when already assignable, the
// converter's result otherwise.
func (a *Inbound[T]) adaptMessage(msg *Message) (T, error) {
	var zero T
	if a.passthrough {
		return any(msg).(T), nil
	}
	if v, ok := msg.Payload().(T); ok {
		return v, nil
	}
	out, err := a.convert.Convert(msg, a.target)
	if err != nil {
		if errors.Is(err, ErrConversion) {
			return zero, err
		}
		return zero, errors.Join(ErrConversion, err)
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: converter returned %T, want %s", ErrConversion, out, a.target)
	}
	return v, nil
}

// Adapt registers the per-element transform over stream and returns a
// sequence of the same order whose message values are coerced to T.
// When T is the message shape itself the input is returned untouched -
// the caller wants the envelope. Elements that are not messages are
// never this adapter's to judge and pass through unchanged regardless
// of T. Messages that fail to adapt are reported to the error handler
// and skipped; the failure never affects other elements.
func (a *Inbound[T]) Adapt(stream Stream) Stream {
	if a.passthrough {
		return stream
	}
	return func(yield func(any, any) bool) {
		for key, value := range stream {
			msg, ok := value.(*Message)
			if !ok {
				if !yield(key, value) {
					return
				}
				continue
			}
			v, err := a.adaptMessage(msg)
			if err != nil {
				a.logger.Debug("dropping element", "error", err)
				a.count("binder.inbound.errors", "Total elements that failed to adapt")
				a.onError(err)
				continue
			}
			a.count("binder.inbound.adapted", "Total elements adapted to the declared type")
			if !yield(key, v) {
				return
			}
		}
	}
}

func (a *Inbound[T]) count(name, description string) {
	if !a.metricsEnabled {
		return
	}
	meter := otel.Meter(instrumentationName)
	counter, _ := meter.Int64Counter(name, metric.WithDescription(description))
	counter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("target", a.target.String())))
}

// Package binder adapts typed application messages onto transports that
// only understand raw byte records keyed by a single binary value.
//
// The outbound side serializes a message payload to bytes, resolves a
// content-type descriptor for it, and (when embedding is enabled) folds
// the message headers into the value bytes so a single byte-array
// channel carries both. The inbound side reverses the mapping and hands
// the destination handler a value of exactly the declared type.
//
// Outbound example:
//
//	snk := channel.New()
//	out, err := binder.NewOutboundAdapter(snk)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg := binder.NewMessage(Order{ID: "ORD-1"}, nil)
//	out.Bind(ctx, "orders", func(yield func(any, any) bool) {
//	    yield([]byte("key-1"), msg)
//	})
//
// Inbound example:
//
//	in := binder.NewInbound[Order]()
//	for key, order := range in.Adapt(stream) {
//	    handle(key, order.(Order))
//	}
//
// Adapter Options:
//   - WithEmbeddedHeaders: embed headers in the record value. Default is true.
//   - WithHeaders: additional header names to embed beyond the standard set.
//   - WithEncoder: payload encoder for structured payloads. Default is payload.JSON.
//   - WithConverter: inbound payload converter. Default decodes via the payload registry.
//   - WithErrorHandler: callback for per-element failures.
//   - WithMetrics: enable/disable OpenTelemetry metrics. Default is true.
//   - WithTracing: enable/disable OpenTelemetry tracing. Default is true.
//   - WithLogger: set logger for the adapter.
//
// Every transformation is a per-element pure function: the adapters keep
// no per-message state, never reorder elements, and surface each failure
// synchronously for the single offending element. The only shared state
// is the resolver's content-type cache, which is safe for concurrent use.
package binder

// Package payload provides payload encoders for the binder core.
//
// Encoders serialize structured payload values on the outbound path and
// decode byte payloads back into declared types on the inbound path.
// The encoding format is a pluggable strategy; the binder core never
// interprets it.
//
// Usage:
//
//	// Use JSON encoder (default)
//	out, err := binder.NewOutboundAdapter(snk)
//
//	// Use msgpack encoder
//	out, err := binder.NewOutboundAdapter(snk, binder.WithEncoder(payload.MsgPack{}))
package payload

import "io"

// Encoder encodes/decodes payload values.
// Implementations must be safe for concurrent use.
type Encoder interface {
	// Encode writes the serialized form of v to w.
	Encode(v any, w io.Writer) error

	// Decode deserializes bytes to the target type.
	// The target must be a pointer.
	Decode(data []byte, v any) error

	// ContentType returns the MIME type (e.g., "application/json").
	ContentType() string
}

// Default returns the default encoder (JSON).
func Default() Encoder {
	return JSON{}
}

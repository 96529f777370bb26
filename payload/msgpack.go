package payload

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack implements Encoder using MessagePack serialization.
// MessagePack is a binary format that's more compact than JSON
// while maintaining schema-less flexibility.
type MsgPack struct{}

// Encode writes the MessagePack form of v to w.
func (MsgPack) Encode(v any, w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(v)
}

// Decode deserializes MessagePack bytes to the target type.
func (MsgPack) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// ContentType returns the MIME type for MessagePack.
func (MsgPack) ContentType() string {
	return "application/msgpack"
}

// Compile-time check.
var _ Encoder = MsgPack{}

func init() {
	Register(MsgPack{})
}

package payload

import (
	"errors"
	"io"

	"google.golang.org/protobuf/proto"
)

// Proto implements Encoder using Protocol Buffers serialization.
// Payloads must implement proto.Message.
//
// Usage:
//
//	out, err := binder.NewOutboundAdapter(snk, binder.WithEncoder(payload.Proto{}))
type Proto struct{}

// Encode writes the Protocol Buffer form of v to w.
// The payload must implement proto.Message.
func (Proto) Encode(v any, w io.Writer) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return errors.New("payload must implement proto.Message")
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode deserializes Protocol Buffer bytes to the target type.
// The target must be a pointer to a proto.Message.
func (Proto) Decode(data []byte, v any) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return errors.New("target must implement proto.Message")
	}
	return proto.Unmarshal(data, msg)
}

// ContentType returns the MIME type for Protocol Buffers.
func (Proto) ContentType() string {
	return "application/protobuf"
}

// Compile-time check.
var _ Encoder = Proto{}

func init() {
	Register(Proto{})
}

package binder

import (
	"bytes"
	"errors"

	"github.com/rbaliyan/binder/payload"
)

// PayloadCodec converts message payloads into raw bytes. Bytes pass
// through unchanged and text is UTF-8 encoded; everything else is
// handed to the injected encoder, which owns the encoding format.
type PayloadCodec struct {
	enc payload.Encoder
}

// NewPayloadCodec creates a codec around enc. A nil encoder falls back
// to the default JSON encoder.
func NewPayloadCodec(enc payload.Encoder) *PayloadCodec {
	if enc == nil {
		enc = payload.Default()
	}
	return &PayloadCodec{enc: enc}
}

// ToBytes serializes p. The returned slice may alias the input for byte
// payloads. Encoder failures return ErrSerialization joined with the
// cause; the failure is scoped to this single payload and never retried.
func (c *PayloadCodec) ToBytes(p any) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPayload
	}
	switch classify(p) {
	case kindBytes:
		return p.([]byte), nil
	case kindText:
		return []byte(p.(string)), nil
	}
	var buf bytes.Buffer
	if err := c.enc.Encode(p, &buf); err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

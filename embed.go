package binder

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// envelopeMagic marks a record value whose headers are embedded ahead
// of the payload. 0xff is not a legal first byte of UTF-8 text or JSON,
// so a consumer configured for raw framing can never mistake an
// envelope for a plain payload. The magic doubles as the format
// version; a future layout gets a new marker byte.
const envelopeMagic = 0xff

// Envelope layout (v1):
//
//	[0]    magic 0xff
//	[1]    header count (uint8)
//	per header:
//	       name length (uint8), name bytes,
//	       value length (uint32 big-endian), JSON-encoded value bytes
//	rest:  payload bytes
//
// The layout is a frozen wire contract: EmbedHeaders followed by
// ExtractHeaders reproduces the payload byte for byte and the retained
// header mapping exactly.

// EmbedHeaders folds the allow-listed headers of values into a single
// self-describing byte sequence carrying both headers and payload.
// Headers outside the allow-list are silently dropped. Content-type
// shaped values are stringified before embedding; everything else is
// JSON-encoded. The payload must already be serialized to bytes.
func EmbedHeaders(values *MessageValues, names ...string) ([]byte, error) {
	data, ok := values.Payload.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: payload must be serialized before embedding, got %T", ErrIllegalMessage, values.Payload)
	}

	type section struct {
		name  string
		value []byte
	}
	sections := make([]section, 0, len(names))
	size := 2 + len(data)
	for _, name := range names {
		v, ok := values.Headers[name]
		if !ok || v == nil {
			continue
		}
		if mt, ok := v.(MimeType); ok {
			v = mt.String()
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Join(ErrSerialization, err)
		}
		if len(name) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: header name %q exceeds %d bytes", ErrIllegalMessage, name, math.MaxUint8)
		}
		if int64(len(encoded)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: header %q value too large", ErrIllegalMessage, name)
		}
		sections = append(sections, section{name: name, value: encoded})
		size += 1 + len(name) + 4 + len(encoded)
	}
	if len(sections) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: too many headers to embed (%d)", ErrIllegalMessage, len(sections))
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	buf.WriteByte(envelopeMagic)
	buf.WriteByte(byte(len(sections)))
	for _, s := range sections {
		buf.WriteByte(byte(len(s.name)))
		buf.WriteString(s.name)
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(s.value)))
		buf.Write(length[:])
		buf.Write(s.value)
	}
	buf.Write(data)
	return buf.Bytes(), nil
}

// ExtractHeaders is the strict inverse of EmbedHeaders: it parses an
// envelope back into the original payload bytes and the retained header
// mapping. Header values carry JSON typing: strings come back as
// strings, but any numeric value extracts as float64. Returns
// ErrMalformedEnvelope when the bytes do not parse as a valid envelope.
func ExtractHeaders(data []byte) (*MessageValues, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrMalformedEnvelope, len(data))
	}
	if data[0] != envelopeMagic {
		return nil, fmt.Errorf("%w: missing envelope marker", ErrMalformedEnvelope)
	}
	count := int(data[1])
	offset := 2
	headers := make(Headers, count)
	for i := 0; i < count; i++ {
		if offset >= len(data) {
			return nil, fmt.Errorf("%w: truncated at header %d", ErrMalformedEnvelope, i)
		}
		nameLen := int(data[offset])
		offset++
		if offset+nameLen > len(data) {
			return nil, fmt.Errorf("%w: truncated header name", ErrMalformedEnvelope)
		}
		name := string(data[offset : offset+nameLen])
		offset += nameLen
		if offset+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated length field for header %q", ErrMalformedEnvelope, name)
		}
		valueLen := int(binary.BigEndian.Uint32(data[offset:]))
		offset += 4
		if valueLen < 0 || offset+valueLen > len(data) {
			return nil, fmt.Errorf("%w: inconsistent length for header %q", ErrMalformedEnvelope, name)
		}
		var v any
		if err := json.Unmarshal(data[offset:offset+valueLen], &v); err != nil {
			return nil, errors.Join(fmt.Errorf("%w: bad value for header %q", ErrMalformedEnvelope, name), err)
		}
		headers[name] = v
		offset += valueLen
	}
	payload := make([]byte, len(data)-offset)
	copy(payload, data[offset:])
	return &MessageValues{Payload: payload, Headers: headers}, nil
}

// HasEmbeddedHeaders reports whether data begins with the envelope
// marker, i.e. whether ExtractHeaders can be applied to it.
func HasEmbeddedHeaders(data []byte) bool {
	return len(data) > 0 && data[0] == envelopeMagic
}

// ExtractMessage rebuilds a Message from an inbound record value.
// Envelopes are unwrapped; raw values become a message with the bytes
// as payload and no headers beyond the generated id.
func ExtractMessage(data []byte) (*Message, error) {
	if !HasEmbeddedHeaders(data) {
		return NewMessage(data, nil), nil
	}
	values, err := ExtractHeaders(data)
	if err != nil {
		return nil, err
	}
	return values.ToMessage(), nil
}

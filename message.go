package binder

import (
	"fmt"

	"github.com/google/uuid"
)

// Headers is the header mapping carried by a Message. Keys are unique;
// insertion order is irrelevant but preserved values pass through
// untouched.
type Headers map[string]any

// Get returns the header value for the provided name, or nil.
func (h Headers) Get(name string) any {
	return h[name]
}

// GetString returns the header value rendered as a string, or "" when
// the header is absent. Content-type values stringify to their canonical
// form.
func (h Headers) GetString(name string) string {
	v, ok := h[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Copy returns a shallow copy of the headers.
func (h Headers) Copy() Headers {
	if h == nil {
		return nil
	}
	h1 := make(Headers, len(h))
	for name, v := range h {
		h1[name] = v
	}
	return h1
}

// Message is an immutable logical unit of payload plus headers exchanged
// between application components. Transformations never mutate a Message
// in place; they work on a MessageValues copy instead.
type Message struct {
	payload any
	headers Headers
}

// NewMessage creates a message from a payload and optional headers.
// The header map is copied, and an id header is generated when the
// caller did not supply one.
func NewMessage(payload any, headers Headers) *Message {
	h := headers.Copy()
	if h == nil {
		h = Headers{}
	}
	if _, ok := h[HeaderID]; !ok {
		h[HeaderID] = uuid.NewString()
	}
	return &Message{payload: payload, headers: h}
}

// Payload returns the message payload.
func (m *Message) Payload() any {
	return m.payload
}

// Headers returns a copy of the message headers. Mutating the returned
// map does not affect the message.
func (m *Message) Headers() Headers {
	return m.headers.Copy()
}

// Header returns the value of a single header, or nil.
func (m *Message) Header(name string) any {
	return m.headers[name]
}

// ContentType returns the contentType header rendered as a string.
func (m *Message) ContentType() string {
	return m.headers.GetString(HeaderContentType)
}

// MessageValues is the mutable working copy of a Message used while a
// message moves through the outbound pipeline. It is never shared
// between elements.
type MessageValues struct {
	Payload any
	Headers Headers
}

// NewMessageValues creates a working copy of msg.
func NewMessageValues(msg *Message) *MessageValues {
	return &MessageValues{
		Payload: msg.payload,
		Headers: msg.headers.Copy(),
	}
}

// ToMessage freezes the working copy into an immutable Message.
func (v *MessageValues) ToMessage() *Message {
	return NewMessage(v.Payload, v.Headers)
}

package binder

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

// MimeType is a structured content-type descriptor: a primary/subtype
// pair with optional parameters. The zero value is "no content type".
type MimeType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// TypeParam is the parameter carrying a fully-qualified type name for
// structured object payloads.
const TypeParam = "type"

// Well-known content types.
var (
	OctetStream     = MimeType{Type: "application", Subtype: "octet-stream"}
	TextPlain       = MimeType{Type: "text", Subtype: "plain"}
	ApplicationJSON = MimeType{Type: "application", Subtype: "json"}
)

// ObjectMimeType builds the descriptor for a structured object payload,
// recording its fully-qualified type name in the type parameter.
func ObjectMimeType(typeName string) MimeType {
	return MimeType{
		Type:    "application",
		Subtype: "x-object",
		Params:  map[string]string{TypeParam: typeName},
	}
}

// ParseMimeType parses the canonical string form of a content type.
func ParseMimeType(s string) (MimeType, error) {
	mediaType, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MimeType{}, fmt.Errorf("invalid mime type %q: %w", s, err)
	}
	primary, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return MimeType{}, fmt.Errorf("invalid mime type %q: missing subtype", s)
	}
	m := MimeType{Type: primary, Subtype: subtype}
	if len(params) > 0 {
		m.Params = params
	}
	return m, nil
}

// IsZero reports whether m is the empty descriptor.
func (m MimeType) IsZero() bool {
	return m.Type == "" && m.Subtype == ""
}

// Param returns a single parameter value, or "".
func (m MimeType) Param(name string) string {
	return m.Params[name]
}

// String renders the canonical form, e.g.
// `application/x-object;type="com.example.Order"`. Parameters appear in
// sorted order and values are always quoted so type names carrying a
// bracket survive round-trips.
func (m MimeType) String() string {
	var b strings.Builder
	b.WriteString(m.Type)
	b.WriteByte('/')
	b.WriteString(m.Subtype)
	if len(m.Params) > 0 {
		names := make([]string, 0, len(m.Params))
		for name := range m.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, ";%s=%q", name, m.Params[name])
		}
	}
	return b.String()
}

// Equal reports whether two descriptors are equal by value.
func (m MimeType) Equal(o MimeType) bool {
	if m.Type != o.Type || m.Subtype != o.Subtype || len(m.Params) != len(o.Params) {
		return false
	}
	for name, v := range m.Params {
		if o.Params[name] != v {
			return false
		}
	}
	return true
}

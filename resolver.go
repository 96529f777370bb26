package binder

import (
	"reflect"
	"sync"
)

// payloadKind classifies a payload into the closed set of shapes the
// adapter distinguishes. Classification happens once at the boundary.
type payloadKind int

const (
	kindBytes payloadKind = iota
	kindText
	kindValue
)

func classify(payload any) payloadKind {
	switch payload.(type) {
	case []byte:
		return kindBytes
	case string:
		return kindText
	default:
		return kindValue
	}
}

// ContentTypeResolver determines the content-type descriptor for a
// payload. Raw bytes and text are fast-pathed; arbitrary object types
// resolve through a cache keyed by the concrete type name, so repeated
// resolution of the same type never re-synthesizes the descriptor.
//
// Safe for concurrent use. Lost races on a first resolution are
// harmless: the descriptor is a pure function of the type name.
type ContentTypeResolver struct {
	cache sync.Map // type name -> MimeType
}

// NewContentTypeResolver creates a resolver with an empty cache.
func NewContentTypeResolver() *ContentTypeResolver {
	return &ContentTypeResolver{}
}

// Resolve determines the content type for payload. The hint is the
// content type declared by the application, if any; it disambiguates
// text that happens to be JSON-encoded. A nil payload is a caller bug
// and returns ErrNilPayload.
func (r *ContentTypeResolver) Resolve(payload any, hint string) (MimeType, error) {
	if payload == nil {
		return MimeType{}, ErrNilPayload
	}
	switch classify(payload) {
	case kindBytes:
		return OctetStream, nil
	case kindText:
		if hint == ApplicationJSON.String() {
			return ApplicationJSON, nil
		}
		return TextPlain, nil
	}
	name := typeName(reflect.TypeOf(payload))
	if v, ok := r.cache.Load(name); ok {
		return v.(MimeType), nil
	}
	v, _ := r.cache.LoadOrStore(name, ObjectMimeType(name))
	return v.(MimeType), nil
}

// typeName returns the package-path-qualified name of a concrete type.
// Unnamed types (slices, maps, pointers) fall back to reflect's own
// rendering; any bracket in it is handled by the descriptor's quoted
// type parameter.
func typeName(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

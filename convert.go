package binder

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rbaliyan/binder/payload"
)

// Converter coerces a message into a value of the target type. Supplied
// by the application; failures propagate to the caller as ErrConversion.
// Implementations must be safe for concurrent use.
type Converter interface {
	// Convert returns a value assignable to target built from msg.
	Convert(msg *Message, target reflect.Type) (any, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(msg *Message, target reflect.Type) (any, error)

// Convert calls f.
func (f ConverterFunc) Convert(msg *Message, target reflect.Type) (any, error) {
	return f(msg, target)
}

// CodecConverter is the default converter: it decodes a byte payload
// into a freshly allocated target value using the encoder registered
// for the message's content type, falling back to JSON for unknown
// content types.
type CodecConverter struct{}

// Convert decodes the message payload into the target type.
func (CodecConverter) Convert(msg *Message, target reflect.Type) (any, error) {
	var data []byte
	switch p := msg.Payload().(type) {
	case []byte:
		data = p
	case string:
		data = []byte(p)
	default:
		return nil, fmt.Errorf("%w: cannot decode %T payload", ErrConversion, msg.Payload())
	}

	contentType := msg.ContentType()
	if mt, err := ParseMimeType(contentType); err == nil {
		// Lookup ignores parameters such as the embedded type name.
		contentType = mt.Type + "/" + mt.Subtype
	}
	enc := payload.MustGet(contentType)

	if target.Kind() == reflect.Pointer {
		out := reflect.New(target.Elem())
		if err := enc.Decode(data, out.Interface()); err != nil {
			return nil, errors.Join(ErrConversion, err)
		}
		return out.Interface(), nil
	}
	out := reflect.New(target)
	if err := enc.Decode(data, out.Interface()); err != nil {
		return nil, errors.Join(ErrConversion, err)
	}
	return out.Elem().Interface(), nil
}

// Compile-time check.
var _ Converter = CodecConverter{}

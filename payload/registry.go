package payload

import "sync"

var (
	mu       sync.RWMutex
	registry = map[string]Encoder{
		"application/json": JSON{},
	}
)

// Register adds an encoder to the global registry.
// Encoders are looked up by their ContentType() during inbound decoding.
func Register(enc Encoder) {
	mu.Lock()
	defer mu.Unlock()
	registry[enc.ContentType()] = enc
}

// Get retrieves an encoder by content type from the global registry.
// Returns the encoder and true if found, or nil and false if not found.
func Get(contentType string) (Encoder, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[contentType]
	return e, ok
}

// MustGet retrieves an encoder by content type, returning the default
// JSON encoder if the requested content type is not found.
func MustGet(contentType string) Encoder {
	if e, ok := Get(contentType); ok {
		return e
	}
	return JSON{}
}

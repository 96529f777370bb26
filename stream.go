package binder

import (
	"fmt"
	"iter"
)

// Stream is the lazy (key, value) element sequence supplied by the
// external streaming engine. Adapters register one-to-one,
// order-preserving per-element transforms over it; they never buffer,
// batch, or reorder. Ordering between elements is whatever the external
// channel already guarantees.
type Stream = iter.Seq2[any, any]

// Record is one byte-keyed record produced by the outbound adapter.
type Record struct {
	Key   []byte
	Value []byte
}

// keyBytes passes a record key through to its wire form. Keys are
// opaque to the adapter; only shapes the byte-keyed channel can carry
// are accepted.
func keyBytes(key any) ([]byte, error) {
	switch k := key.(type) {
	case nil:
		return nil, nil
	case []byte:
		return k, nil
	case string:
		return []byte(k), nil
	default:
		return nil, fmt.Errorf("%w: unsupported key type %T", ErrIllegalMessage, key)
	}
}

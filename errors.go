package binder

import "errors"

// Adapter errors.
// Use errors.Is() to check for these errors as they may be wrapped with
// additional context. All failures are per-element and synchronous; none
// are retried here - retry and backoff belong to the external transport
// or the application layer.
var (
	// ErrNilPayload indicates a caller contract violation: a nil payload
	// was handed to the resolver or codec. This is a bug in the calling
	// code, not a runtime condition to recover from.
	ErrNilPayload = errors.New("payload must not be nil")

	// ErrSerialization indicates the payload could not be turned into
	// bytes. Scoped to the single offending message.
	ErrSerialization = errors.New("failed to serialize payload")

	// ErrMalformedEnvelope indicates inbound bytes do not parse as a
	// valid header-embedded envelope (truncated, inconsistent lengths,
	// or missing envelope marker).
	ErrMalformedEnvelope = errors.New("malformed header envelope")

	// ErrIllegalMessage indicates an outbound value was not of a shape
	// the adapter can process, e.g. not message-shaped while header
	// embedding was requested.
	ErrIllegalMessage = errors.New("illegal outbound message")

	// ErrConversion indicates an inbound payload could not be coerced
	// to the declared target type.
	ErrConversion = errors.New("failed to convert payload to target type")
)

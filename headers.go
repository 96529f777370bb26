package binder

// Header names reserved by the adapter. All of them carry plain string
// values on the wire.
const (
	// HeaderID is the unique message identifier, generated when the
	// application does not supply one.
	HeaderID = "id"

	// HeaderContentType describes the serialized payload format.
	HeaderContentType = "contentType"

	// HeaderOriginalContentType retains the content type declared by the
	// application when resolution produced a different one.
	HeaderOriginalContentType = "originalContentType"

	// HeaderCorrelationID correlates a message with a request or saga.
	HeaderCorrelationID = "correlationId"

	// HeaderSequenceNumber is the position of a message within a sequence.
	HeaderSequenceNumber = "sequenceNumber"

	// HeaderSequenceSize is the total number of messages in a sequence.
	HeaderSequenceSize = "sequenceSize"
)

// StandardHeaders returns the header names embedded by default.
func StandardHeaders() []string {
	return []string{
		HeaderID,
		HeaderCorrelationID,
		HeaderSequenceNumber,
		HeaderSequenceSize,
		HeaderContentType,
		HeaderOriginalContentType,
	}
}

// headersToEmbed builds the adapter's allow-list: the standard set plus
// the configured extras, order preserved, duplicates dropped. Resolved
// once at construction and immutable for the adapter's lifetime.
func headersToEmbed(extra []string) []string {
	names := StandardHeaders()
	seen := make(map[string]struct{}, len(names)+len(extra))
	for _, name := range names {
		seen[name] = struct{}{}
	}
	for _, name := range extra {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

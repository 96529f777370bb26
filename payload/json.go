package payload

import (
	"encoding/json"
	"io"
)

// JSON implements Encoder using JSON serialization.
// This is the default encoder.
type JSON struct{}

// Encode writes the JSON form of v to w.
func (JSON) Encode(v any, w io.Writer) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode deserializes JSON bytes to the target type.
func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the MIME type for JSON.
func (JSON) ContentType() string {
	return "application/json"
}

// Compile-time check.
var _ Encoder = JSON{}

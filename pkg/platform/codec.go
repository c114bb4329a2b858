// Package platform connects Go to the native side of the host app: method
// and event channels carried over a [NativeBridge], the platform view
// registry, and the native web view that renders hosted checkout pages.
package platform

import (
	"bytes"
	"encoding/json"
)

// MessageCodec converts channel payloads to and from bytes.
type MessageCodec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JsonCodec is the JSON wire format spoken by the native bridges.
// Numbers decode as [json.Number] so view IDs survive the round trip
// without passing through float64.
type JsonCodec struct{}

func (JsonCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode returns nil for an empty payload.
func (JsonCodec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DefaultCodec is the codec used by all channels.
var DefaultCodec MessageCodec = JsonCodec{}

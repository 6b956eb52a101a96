package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// CodecName is the name Connect negotiates the codec under.
const CodecName = "json"

// Codec is a connect.Codec that encodes messages as JSON.
// Decoding rejects unknown fields and trailing data.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		// empty messages may be sent as an empty body
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("malformed message: trailing data")
	}
	return nil
}

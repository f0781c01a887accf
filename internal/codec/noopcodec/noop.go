// Package noopcodec provides a no-op codec (no compression).
package noopcodec

import "github.com/fetchwise/hoard/internal/codec"

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements no compression.
type Codec struct{}

// New returns a new no-op codec.
func New() *Codec {
	return &Codec{}
}

// Encode returns payload unchanged.
func (c *Codec) Encode(payload []byte) ([]byte, error) {
	return payload, nil
}

// Decode returns stored unchanged.
func (c *Codec) Decode(stored []byte) ([]byte, error) {
	return stored, nil
}

// Name returns empty string.
func (c *Codec) Name() string {
	return ""
}

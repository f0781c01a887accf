// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/fetchwise/hoard/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression. A Codec is safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New returns a new zstd codec.
func New() *Codec {
	// Both constructors only fail on invalid options; none are passed.
	encoder, _ := zstd.NewWriter(nil)
	decoder, _ := zstd.NewReader(nil)
	return &Codec{
		encoder: encoder,
		decoder: decoder,
	}
}

// Encode compresses payload with zstd.
func (c *Codec) Encode(payload []byte) ([]byte, error) {
	return c.encoder.EncodeAll(payload, nil), nil
}

// Decode decompresses zstd data.
func (c *Codec) Decode(stored []byte) ([]byte, error) {
	return c.decoder.DecodeAll(stored, nil)
}

// Name returns "zstd".
func (c *Codec) Name() string {
	return "zstd"
}

// Package codec provides compression and decompression for cached payloads.
package codec

// Codec transforms payloads on their way in and out of the cache. Encode and
// Decode must round-trip: Decode(Encode(p)) equals p.
type Codec interface {
	// Encode returns the resident form of payload.
	Encode(payload []byte) ([]byte, error)
	// Decode reverses Encode.
	Decode(stored []byte) ([]byte, error)
	// Name identifies the codec (e.g. "zstd", "gzip"). Empty string means
	// no compression.
	Name() string
}

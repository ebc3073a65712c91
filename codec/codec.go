package codec

// Codec encodes/decodes values V to []byte for storage.
// Only the payload goes through a Codec; tag stamps and the entry frame
// are encoded by tagcache itself.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

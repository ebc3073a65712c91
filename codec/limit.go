package codec

import "fmt"

// LimitCodec wraps another codec to refuse oversized payloads at Decode time.
// Encode is forwarded to Inner unchanged. If MaxDecode <= 0 there is no limit.
//
// A memcached shared with other applications can hold anything under a key;
// an oversized payload is then read as a miss instead of being decoded.
type LimitCodec[V any] struct {
	Inner     Codec[V] // must be set
	MaxDecode int      // bytes
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}

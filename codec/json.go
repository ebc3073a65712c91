package codec

import "encoding/json"

var _ Codec[struct{}] = JSON[struct{}]{}

// JSON encodes the payload stored inside a cache entry as JSON. Only the
// payload is JSON; tags and ttl travel in the entry frame around it.
// The zero value is ready to use.
//
// Fields that are not exported (tags, ttl kept on the value for CacheTags and
// Expires) are not stored and come back zero on a hit.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

package codec

import "github.com/vmihailenco/msgpack/v5"

var _ Codec[struct{}] = Msgpack[struct{}]{}

// Msgpack encodes entry payloads with vmihailenco/msgpack/v5, the library the
// entry frame itself uses, so a read decodes with one serializer end to end.
// The zero value is ready to use.
//
// Use `msgpack:"fieldName"` tags to pin field names across deployments that
// share a store.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := msgpack.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

package codec

import "google.golang.org/protobuf/proto"

// Protobuf encodes generated messages. The cached type must be the message
// pointer itself, so it also has to implement tagcache.Value.
type Protobuf[T proto.Message] struct {
	new func() T // e.g. func() *mypb.User { return &mypb.User{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}

package codec

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type item struct {
	ID   int      `json:"id" cbor:"id" msgpack:"id"`
	Text string   `json:"text" cbor:"text" msgpack:"text"`
	Tags []string `json:"tags" cbor:"tags" msgpack:"tags"`
}

func TestStructCodecs(t *testing.T) {
	in := item{ID: 42, Text: "hello", Tags: []string{"user-list"}}
	codecs := map[string]Codec[item]{
		"json":     JSON[item]{},
		"msgpack":  Msgpack[item]{},
		"cbor":     MustCBOR[item](false),
		"cbor_det": MustCBOR[item](true),
	}
	for name, cd := range codecs {
		t.Run(name, func(t *testing.T) {
			b, err := cd.Encode(in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			out, err := cd.Decode(b)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if out.ID != in.ID || out.Text != in.Text || len(out.Tags) != 1 || out.Tags[0] != "user-list" {
				t.Fatalf("got %+v want %+v", out, in)
			}
		})
	}
}

func TestProtobufCodec(t *testing.T) {
	cd := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	b, err := cd.Encode(wrapperspb.String("payload"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := cd.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.GetValue() != "payload" {
		t.Fatalf("got %q", out.GetValue())
	}
}

func TestLimitCodec(t *testing.T) {
	cd := LimitCodec[item]{Inner: JSON[item]{}, MaxDecode: 40}
	big := item{Text: strings.Repeat("x", 64)}
	b, err := cd.Encode(big)
	if err != nil {
		t.Fatalf("Encode is not limited: %v", err)
	}
	if _, err := cd.Decode(b); err == nil {
		t.Fatalf("expected payload too large")
	}
	small, _ := cd.Encode(item{ID: 1})
	if _, err := cd.Decode(small); err != nil {
		t.Fatalf("small payload rejected: %v", err)
	}
}

func TestDecodeErrorReturnsZeroValue(t *testing.T) {
	codecs := map[string]Codec[item]{
		"json":    JSON[item]{},
		"msgpack": Msgpack[item]{},
	}
	// a half-written payload from another writer
	partial := map[string][]byte{
		"json":    []byte(`{"id": 7, "text": "cut`),
		"msgpack": {0x83, 0xa2, 'i', 'd', 0x07},
	}
	for name, cd := range codecs {
		t.Run(name, func(t *testing.T) {
			out, err := cd.Decode(partial[name])
			if err == nil {
				t.Fatalf("expected decode error")
			}
			if out.ID != 0 || out.Text != "" || out.Tags != nil {
				t.Fatalf("failed decode must return the zero value, got %+v", out)
			}
		})
	}
}

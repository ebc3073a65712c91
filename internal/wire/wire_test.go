package wire

import (
	"bytes"
	"testing"
	"time"
)

func mustEncode(t *testing.T, e Entry) []byte {
	t.Helper()
	b, err := EncodeEntry(e)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}
	return b
}

func TestEntryRoundTrip(t *testing.T) {
	cases := []Entry{
		{Value: []byte("hello")},
		{Value: []byte(`{"id":42}`), Tags: map[string]uint64{"user-list": 7, "user@42": 9}},
		{Value: []byte{0, 1, 2}, Tags: map[string]uint64{"t": 1}, Expires: 90 * time.Second},
	}
	for _, in := range cases {
		got, err := DecodeEntry(mustEncode(t, in))
		if err != nil {
			t.Fatalf("DecodeEntry: %v", err)
		}
		if !bytes.Equal(got.Value, in.Value) || got.Expires != in.Expires || len(got.Tags) != len(in.Tags) {
			t.Fatalf("mismatch: got=%+v want=%+v", got, in)
		}
		for k, v := range in.Tags {
			if got.Tags[k] != v {
				t.Fatalf("tag %q: got %d want %d", k, got.Tags[k], v)
			}
		}
	}
}

func TestEntryRejectsForeignAndCorrupt(t *testing.T) {
	enc := mustEncode(t, Entry{Value: []byte("abc"), Tags: map[string]uint64{"a": 1}})

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'

	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1

	trailing := append(append([]byte(nil), enc...), 0xDE, 0xAD)

	cases := map[string][]byte{
		"empty":     nil,
		"raw_value": []byte("not-an-entry"),
		"bad_magic": badMagic,
		"bad_ver":   badVer,
		"header":    enc[:hdr],
		"truncated": enc[:len(enc)-1],
		"trailing":  trailing,
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeEntry(b); err != ErrCorrupt {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestStampEncoding(t *testing.T) {
	s, err := DecodeStamp(EncodeStamp(1_700_000_000_123456789))
	if err != nil || s != 1_700_000_000_123456789 {
		t.Fatalf("stamp round trip: %d %v", s, err)
	}
	for _, bad := range [][]byte{nil, []byte("x1"), []byte("-5"), []byte("1.5")} {
		if _, err := DecodeStamp(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

package wire

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("tagcache: corrupt entry")
	magic4     = [...]byte{'T', 'A', 'G', 'C'}
)

const hdr = 4 + 1

// Entry is the stored record of a cached value.
//   - Value:   codec-encoded payload
//   - Tags:    tag -> stamp observed when the entry was written
//   - Expires: ttl the entry was written with; non-zero bypasses tag checks
type Entry struct {
	Value   []byte            `msgpack:"value"`
	Tags    map[string]uint64 `msgpack:"tags"`
	Expires time.Duration     `msgpack:"expires"`
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeEntry: magic(4) | ver(1) | msgpack(Entry)
func EncodeEntry(e Entry) ([]byte, error) {
	body, err := msgpack.Marshal(&e)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, hdr+len(body))
	out = append(out, magic4[:]...)
	out = append(out, version)
	return append(out, body...), nil
}

// DecodeEntry rejects anything that is not a complete Entry frame,
// including trailing bytes after the msgpack body.
func DecodeEntry(b []byte) (Entry, error) {
	var e Entry
	if len(b) <= hdr || !hasMagic(b) || b[4] != version {
		return e, ErrCorrupt
	}
	r := bytes.NewReader(b[hdr:])
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&e); err != nil {
		return Entry{}, ErrCorrupt
	}
	if r.Len() != 0 {
		return Entry{}, ErrCorrupt
	}
	return e, nil
}

// EncodeStamp stores a tag stamp as decimal ASCII.
func EncodeStamp(s uint64) []byte {
	return strconv.AppendUint(nil, s, 10)
}

func DecodeStamp(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, ErrCorrupt
	}
	s, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, ErrCorrupt
	}
	return s, nil
}

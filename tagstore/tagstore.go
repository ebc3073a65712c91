// Package tagstore resolves and resets tag version stamps.
//
// Stamps are ordinary Backend entries (decimal ASCII, no expiry) stored under
// a reserved namespaced key per tag. A cached entry snapshots the stamps of
// its tags when written; resetting a tag gives it a fresh stamp so every entry
// holding the old one reads as stale. Entries are never touched directly.
//
// Nothing here is atomic across tags: a reader may observe a reset of one
// tag but not of another. That only widens the window of a stale hit.
package tagstore

import (
	"context"

	"github.com/unkn0wn-root/tagcache/internal/wire"
	pr "github.com/unkn0wn-root/tagcache/provider"
)

// KeyFunc maps a logical tag to its storage key.
type KeyFunc func(tag string) string

type Store struct {
	b     pr.Backend
	key   KeyFunc
	clock *Clock
}

// New builds a Store on b. clock may be nil (process-wide clock).
func New(b pr.Backend, key KeyFunc, clock *Clock) *Store {
	if clock == nil {
		clock = defaultClock
	}
	return &Store{b: b, key: key, clock: clock}
}

// Resolve returns the current stamp of every tag. Tags without a (decodable)
// stamp get a fresh one, written through so concurrent resolvers converge.
//
// On a read error every tag gets a fresh stamp for this call only and nothing
// is written: entries checked against them miss, but the shared tag state is
// left alone. The returned error is the first backend error seen; the map is
// always complete.
func (s *Store) Resolve(ctx context.Context, tags []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(tags))
	if len(tags) == 0 {
		return out, nil
	}

	keys, byKey := s.storageKeys(tags)
	raw, firstErr := s.b.GetMulti(ctx, keys)
	if firstErr != nil {
		for _, t := range uniq(tags) {
			out[t] = s.clock.Next()
		}
		return out, firstErr
	}

	var fresh map[string][]byte
	for _, t := range uniq(tags) {
		if b, ok := raw[byKey[t]]; ok {
			if st, err := wire.DecodeStamp(b); err == nil {
				out[t] = st
				continue
			}
		}
		st := s.clock.Next()
		out[t] = st
		if fresh == nil {
			fresh = make(map[string][]byte)
		}
		fresh[byKey[t]] = wire.EncodeStamp(st)
	}

	if len(fresh) > 0 {
		if _, err := s.b.SetMulti(ctx, fresh, 0); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Reset gives every tag a fresh stamp in one batched write and returns them.
func (s *Store) Reset(ctx context.Context, tags []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(tags))
	if len(tags) == 0 {
		return out, nil
	}
	items := make(map[string][]byte, len(tags))
	for _, t := range uniq(tags) {
		st := s.clock.Next()
		out[t] = st
		items[s.key(t)] = wire.EncodeStamp(st)
	}
	_, err := s.b.SetMulti(ctx, items, 0)
	return out, err
}

func (s *Store) storageKeys(tags []string) ([]string, map[string]string) {
	byTag := make(map[string]string, len(tags))
	keys := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, dup := byTag[t]; dup {
			continue
		}
		k := s.key(t)
		byTag[t] = k
		keys = append(keys, k)
	}
	return keys, byTag
}

func uniq(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0:0]
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

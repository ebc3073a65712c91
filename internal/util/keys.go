package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Delimiter separates the prefix, the reserved tag segment and the logical key.
const Delimiter = "@"

// tagSegment is reserved so tag keys never collide with object keys.
const tagSegment = "Tag"

// NamespacedKey returns a fixed-length, memcache-safe storage key:
// the first 32 hex chars of sha256(prefix + "@" + key).
func NamespacedKey(prefix, key string) string {
	sum := sha256.Sum256([]byte(prefix + Delimiter + key))
	return hex.EncodeToString(sum[:16])
}

// TagKey returns the storage key of a tag's version stamp.
func TagKey(prefix, tag string) string {
	return NamespacedKey(prefix, tagSegment+Delimiter+tag)
}

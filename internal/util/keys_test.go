package util

import "testing"

func TestNamespacedKeyShapeAndIsolation(t *testing.T) {
	k := NamespacedKey("app", "user@42")
	if len(k) != 32 {
		t.Fatalf("expected 32 hex chars, got %d (%q)", len(k), k)
	}
	for _, r := range k {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("non-hex rune %q in %q", r, k)
		}
	}
	if k != NamespacedKey("app", "user@42") {
		t.Fatalf("namespacing must be deterministic")
	}
	if k == NamespacedKey("other", "user@42") {
		t.Fatalf("different prefixes must not collide")
	}
}

func TestTagKeyNeverEqualsObjectKey(t *testing.T) {
	// a tag and an object sharing the same logical name
	if TagKey("app", "user-list") == NamespacedKey("app", "user-list") {
		t.Fatalf("tag key collides with object key")
	}
	if TagKey("app", "user-list") != NamespacedKey("app", "Tag@user-list") {
		t.Fatalf("tag key should be the namespaced reserved segment")
	}
}

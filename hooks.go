package tagcache

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// An entry was deleted by the cache on read.
	// reason ∈ {"tag_mismatch", "value_decode"}
	StaleEntryDeleted(storageKey, reason string)

	// A stored value is not a tagcache entry (foreign write or corruption).
	// It is read as a miss and left in place.
	CorruptEntry(storageKey string)

	// Backend returned ok=false on a write (pressure/eviction).
	BackendSetRejected(storageKey string, isMulti bool)

	// A backend call failed. op is the monitor operation name.
	BackendError(op string, err error)

	// Tag stamp resolution or reset failed; count is the number of tags involved.
	TagError(count int, err error)

	// A backend call took longer than the force timeout. From now on this
	// cache instance talks to the dummy backend only.
	BackendDegraded(op string, elapsed time.Duration)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StaleEntryDeleted(string, string)      {}
func (NopHooks) CorruptEntry(string)                   {}
func (NopHooks) BackendSetRejected(string, bool)       {}
func (NopHooks) BackendError(string, error)            {}
func (NopHooks) TagError(int, error)                   {}
func (NopHooks) BackendDegraded(string, time.Duration) {}

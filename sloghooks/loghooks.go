// Package sloghooks reports tagcache hook events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/tagcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	StaleEvery      uint64
	BackendErrEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	staleCtr      atomic.Uint64
	backendErrCtr atomic.Uint64
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) StaleEntryDeleted(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("tagcache.stale_entry_deleted",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) CorruptEntry(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("tagcache.corrupt_entry",
		"key", h.redact(storageKey))
}

func (h *Hooks) BackendSetRejected(storageKey string, isMulti bool) {
	if h.l == nil {
		return
	}
	h.l.Warn("tagcache.backend_set_rejected",
		"key", h.redact(storageKey),
		"is_multi", isMulti)
}

func (h *Hooks) BackendError(op string, err error) {
	if h.l == nil || !sample(h.opts.BackendErrEvery, &h.backendErrCtr) {
		return
	}
	h.l.Warn("tagcache.backend_error",
		"op", op,
		"err", err)
}

func (h *Hooks) TagError(count int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("tagcache.tag_error",
		"count", count,
		"err", err)
}

func (h *Hooks) BackendDegraded(op string, elapsed time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Error("tagcache.backend_degraded",
		"op", op,
		"elapsed", elapsed,
		"msg", "switched to dummy backend for the rest of this instance")
}

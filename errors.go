package tagcache

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/tagcache/internal/txlog"
)

var (
	// ErrTransactionStarted is returned by BeginTransaction when one is already open.
	ErrTransactionStarted = txlog.ErrStarted
	// ErrNoTransaction is returned by Commit/Rollback without an open transaction.
	ErrNoTransaction = txlog.ErrNotStarted

	errNotConfigured = errors.New("cache is not configured")
)

// ConnectError is returned by Dial when the store configuration is invalid
// or the backend cannot be reached. It is not recoverable by retrying the
// same configuration.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("tagcache: connect: %v", e.Err)
	}
	return fmt.Sprintf("tagcache: can't connect to server %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

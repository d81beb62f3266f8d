package accountcache

import "errors"

// Lock acquisition errors. Nothing in this package returns them: the
// built-in sharded store cannot fail to lock. They exist for external
// Source / Cache implementations backed by fallible synchronization, so
// their callers can tell "cache internals busy" apart from "data layer
// unreachable" (a FetchError).
var (
	ErrReadLock  = errors.New("failed to acquire read lock")
	ErrWriteLock = errors.New("failed to acquire write lock")
)

// FetchError wraps a failure from the remote account source. A batch that
// fails wholesale surfaces one FetchError and commits nothing to the cache.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to fetch account: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

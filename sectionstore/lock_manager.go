package sectionstore

import (
	"sync"
)

// operationType defines whether an operation reads or writes container state.
type operationType int

const (
	// readOperation marks a query. Multiple reads may proceed concurrently,
	// including while mutations are queued but not yet applied.
	readOperation operationType = iota

	// writeOperation marks a structural mutation. Writes are exclusive; only
	// the pipeline's drain step ever requests one.
	writeOperation
)

// lockManager centralizes locking for the container. Queries are synchronous
// and may run on any goroutine, while mutations run on the pipeline's drain
// goroutine; the lock manager is what makes those reads memory-safe against
// in-flight writes. It deliberately provides consistency of committed state
// only: a read is free to run before queued mutations apply, which is the
// container's documented eventual-consistency contract.
type lockManager struct {
	mu *sync.RWMutex
}

func newLockManager() *lockManager {
	return &lockManager{
		mu: &sync.RWMutex{},
	}
}

// execute runs fn under the lock appropriate for the operation type: a shared
// read lock for queries, the exclusive lock for mutations. The lock is released
// via defer, so it unwinds correctly even if fn panics.
func (lm *lockManager) execute(opType operationType, fn func()) {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	fn()
}

package orchestration

import (
	"sync"

	"github.com/google/uuid"
)

// keyedLocks serializes operations per interview. Concurrent answers to the
// same interview run one at a time; different interviews never contend.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[uuid.UUID]*entry)}
}

// lock acquires the lock for a key and returns its unlock function.
func (k *keyedLocks) lock(key uuid.UUID) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

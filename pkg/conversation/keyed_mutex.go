package conversation

import "sync"

// KeyedMutex serializes work per key (user id) while letting different keys
// proceed fully in parallel. Entries are reference counted and removed when
// the last holder unlocks, so the map does not grow with the user base.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLockEntry
}

type keyedLockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLockEntry)}
}

// Lock blocks until the caller holds the mutex for key.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedLockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}

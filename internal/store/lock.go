package store

import "sync"

// KeyLock serializes read-modify-write cycles per record key. The Store
// interface has no compare-and-swap primitive, so without this two
// concurrent writes to one record could both read the same old state and
// the later Put would silently discard the earlier one.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLock returns an empty lock set.
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (l *KeyLock) Lock(key string) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for key. Must follow a matching Lock.
func (l *KeyLock) Unlock(key string) {
	l.mu.Lock()
	m := l.locks[key]
	l.mu.Unlock()
	m.Unlock()
}

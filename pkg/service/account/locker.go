package account

import (
	"bytes"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes writers per account id inside this process. Entries
// are reference counted and dropped once nobody holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*refMutex)}
}

// Lock acquires every id in ascending order, so two callers locking the same
// pair never deadlock, and returns the matching unlock.
func (k *keyedMutex) Lock(ids ...uuid.UUID) (unlock func()) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ordered = slices.Compact(ordered)

	held := make([]uuid.UUID, 0, len(ordered))
	for _, id := range ordered {
		k.acquire(id).Lock()
		held = append(held, id)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			k.release(held[i])
		}
	}
}

func (k *keyedMutex) acquire(id uuid.UUID) *refMutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	return m
}

func (k *keyedMutex) release(id uuid.UUID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	m := k.locks[id]
	m.Unlock()
	m.refs--
	if m.refs == 0 {
		delete(k.locks, id)
	}
}

// size reports how many ids currently have an entry.
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

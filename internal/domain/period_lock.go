package domain

import "sync"

// periodLocks serializes work per key and drops a key's mutex once nobody holds
// or waits for it.
type periodLocks struct {
	mu    sync.Mutex
	locks map[string]*periodLock
}

type periodLock struct {
	mu   sync.Mutex
	refs int
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[string]*periodLock)}
}

// lock blocks until key is free and returns its release function.
func (p *periodLocks) lock(key string) func() {
	p.mu.Lock()
	entry, ok := p.locks[key]
	if !ok {
		entry = &periodLock{}
		p.locks[key] = entry
	}
	entry.refs++
	p.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		p.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

func (p *periodLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}

package serverconfig

import "sync"

// lockTable hands out one RWMutex per server name. Entries are dropped when
// the last holder releases them.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*serverLock
}

type serverLock struct {
	sync.RWMutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*serverLock)}
}

func (t *lockTable) acquire(name string) *serverLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[name]
	if !ok {
		l = &serverLock{}
		t.locks[name] = l
	}
	l.refs++
	return l
}

func (t *lockTable) release(name string, l *serverLock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, name)
	}
}

// Lock takes the write lock of name and returns its release function.
func (t *lockTable) Lock(name string) func() {
	l := t.acquire(name)
	l.Lock()
	return func() {
		l.Unlock()
		t.release(name, l)
	}
}

// RLock takes the read lock of name and returns its release function.
func (t *lockTable) RLock(name string) func() {
	l := t.acquire(name)
	l.RLock()
	return func() {
		l.RUnlock()
		t.release(name, l)
	}
}

// size returns the number of live entries.
func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}

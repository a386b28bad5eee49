package gameserver

import "sync"

// playerLocks is a keyed mutex table. Entries are reference counted and
// removed once no goroutine holds or waits on them.
// All methods are safe for concurrent use.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*playerLock // playerID → lock
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: make(map[string]*playerLock)}
}

// lock blocks until playerID is held exclusively by the caller.
//
// Postcondition: the returned func releases the lock and must be called exactly once.
func (l *playerLocks) lock(playerID string) func() {
	l.mu.Lock()
	pl, ok := l.locks[playerID]
	if !ok {
		pl = &playerLock{}
		l.locks[playerID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, playerID)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries.
func (l *playerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

package gameserver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerLocks_ReleasesEntries(t *testing.T) {
	l := newPlayerLocks()

	unlockA := l.lock("a")
	unlockB := l.lock("b")
	assert.Equal(t, 2, l.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, l.size())
}

func TestPlayerLocks_ExcludesSamePlayer(t *testing.T) {
	l := newPlayerLocks()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("p1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, l.size())
}

package keyedmutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("emp-1:2024-06-03")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := New()

	unlockA := km.Lock("emp-1:2024-06-03")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("emp-2:2024-06-03")
		unlockB()
		close(done)
	}()

	<-done // would deadlock if keys shared a lock
}

func TestKeyedMutex_EntriesAreReleased(t *testing.T) {
	km := New()

	unlock := km.Lock("emp-1:2024-06-03")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}

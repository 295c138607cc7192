package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesPerKey(t *testing.T) {
	locks := NewKeyLock()
	const workers = 16
	const rounds = 100

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				locks.Lock("rec")
				counter++
				locks.Unlock("rec")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*rounds, counter)
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	locks := NewKeyLock()
	locks.Lock("a")
	defer locks.Unlock("a")

	// A different key must not block.
	done := make(chan struct{})
	go func() {
		locks.Lock("b")
		locks.Unlock("b")
		close(done)
	}()
	<-done
}

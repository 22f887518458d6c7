package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("credit"), lm.GetLock("credit"))
	assert.NotSame(t, lm.GetLock("credit"), lm.GetLock("draw"))
}

func TestGetLock_SerializesHolders(t *testing.T) {
	lm := NewLockManager()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := lm.GetLock("credit")
			mu.Lock()
			defer mu.Unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

package locker_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldplus/collsync/internal/pkg/locker"
)

func TestKeyedLocker_TryAcquire(t *testing.T) {
	l := locker.New()

	assert.True(t, l.TryAcquire("coll-1"), "first acquire should succeed")
	assert.False(t, l.TryAcquire("coll-1"), "second acquire on held key should fail")

	// Different keys never contend.
	assert.True(t, l.TryAcquire("coll-2"))

	l.Release("coll-1")
	assert.True(t, l.TryAcquire("coll-1"), "acquire after release should succeed")
}

func TestKeyedLocker_ReleaseUnheldKeyIsNoop(t *testing.T) {
	l := locker.New()

	l.Release("never-held")
	assert.True(t, l.TryAcquire("never-held"))
}

func TestKeyedLocker_MutualExclusionUnderContention(t *testing.T) {
	l := locker.New()

	const goroutines = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if l.TryAcquire("coll-1") {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, acquired, "exactly one goroutine should win the lock")

	// Lock is free again after the winner releases.
	l.Release("coll-1")
	assert.True(t, l.TryAcquire("coll-1"))
}

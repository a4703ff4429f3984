package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnRegistryAcquireRelease(t *testing.T) {
	r := NewTurnRegistry()

	assert.True(t, r.TryAcquire("session-a"), "first acquire should succeed")
	assert.False(t, r.TryAcquire("session-a"), "second acquire on same session should fail")
	assert.True(t, r.InFlight("session-a"))

	// Other sessions are independent
	assert.True(t, r.TryAcquire("session-b"))

	r.Release("session-a")
	assert.False(t, r.InFlight("session-a"))
	assert.True(t, r.TryAcquire("session-a"), "acquire after release should succeed")
}

func TestTurnRegistryConcurrentAcquire(t *testing.T) {
	r := NewTurnRegistry()

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryAcquire("shared-session") {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired, "exactly one goroutine should win the turn")
}

package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_Advances(t *testing.T) {
	c := NewStepClock(Epoch, time.Second)

	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(time.Second), c.Now())
	assert.Equal(t, Epoch.Add(2*time.Second), c.Peek())
	assert.Equal(t, Epoch.Add(2*time.Second), c.Peek(), "peek must not advance")
}

func TestFrozenClock(t *testing.T) {
	c := NewFrozenClock(Epoch)
	for i := 0; i < 5; i++ {
		assert.Equal(t, Epoch, c.Now())
	}
}

func TestStepClock_Set(t *testing.T) {
	c := NewStepClock(Epoch, time.Minute)
	later := Epoch.Add(24 * time.Hour)

	c.Set(later)
	assert.Equal(t, later, c.Now())
	assert.Equal(t, later.Add(time.Minute), c.Now())
}

func TestStepClock_ThreadSafe(t *testing.T) {
	c := NewStepClock(Epoch, time.Nanosecond)
	const goroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	times := make(chan time.Time, goroutines*callsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				times <- c.Now()
			}
		}()
	}
	wg.Wait()
	close(times)

	seen := make(map[time.Time]bool)
	for ts := range times {
		assert.False(t, seen[ts], "time %v returned twice", ts)
		seen[ts] = true
	}
	assert.Len(t, seen, goroutines*callsPerGoroutine)
}

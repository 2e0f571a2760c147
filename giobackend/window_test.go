package giobackend

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryStopsWhenDone(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		every(time.Millisecond, done, func() { calls.Add(1) })
		close(returned)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, time.Millisecond)
	close(done)

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker goroutine kept running")
	}
	stopped := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

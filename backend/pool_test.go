package backend

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := New(4, 32)
	defer p.Close()

	const n = 20
	var wg sync.WaitGroup
	var count int32
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, p.Execute(func() {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int32(n), count)
}

func TestPool_ClampsInvalidSizes(t *testing.T) {
	p := New(0, 0)
	defer p.Close()

	done := make(chan struct{})
	require.NoError(t, p.Execute(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestPool_ExecuteFailsAfterClose(t *testing.T) {
	p := New(2, 4)
	require.NoError(t, p.Close())

	err := p.Execute(func() {})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestPool_ExecuteFailsWhenQueueFull(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	// occupy the single worker so the queue backs up.
	require.NoError(t, p.Execute(func() { close(started); <-block }))
	<-started
	require.NoError(t, p.Execute(func() {})) // fills the 1-capacity queue

	err := p.Execute(func() {})
	assert.True(t, errors.Is(err, ErrQueueFull))

	close(block)
}

func TestPool_PanicInTaskDoesNotKillWorker(t *testing.T) {
	p := New(1, 4)
	defer p.Close()

	require.NoError(t, p.Execute(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, p.Execute(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestPool_CloseIsIdempotentSafe(t *testing.T) {
	p := New(2, 4)
	require.NoError(t, p.Close())
	// a second Close should not panic, even though cancel is called twice.
	_ = p.Close()
}

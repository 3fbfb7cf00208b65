package update

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsSubmittedTasks(t *testing.T) {
	p := NewWorkerPool(2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, p.Submit(func() { ran.Add(1) }))
	}
	p.Shutdown()

	require.Equal(t, int32(5), ran.Load())
}

func TestWorkerPool_ShutdownWaitsForInFlight(t *testing.T) {
	p := NewWorkerPool(1)

	started := make(chan struct{})
	var done atomic.Bool
	require.True(t, p.Submit(func() {
		close(started)
		time.Sleep(50 * time.Millisecond)
		done.Store(true)
	}))

	<-started
	p.Shutdown()
	require.True(t, done.Load())
}

func TestWorkerPool_RejectsAfterShutdown(t *testing.T) {
	p := NewWorkerPool(1)
	p.Shutdown()
	require.False(t, p.Submit(func() {}))
}

func TestWorkerPool_ShutdownIdempotent(t *testing.T) {
	p := NewWorkerPool(1)
	p.Shutdown()
	p.Shutdown()
}

func TestWorkerPool_DefaultsSizeWhenInvalid(t *testing.T) {
	p := NewWorkerPool(0)
	var ran atomic.Bool
	require.True(t, p.Submit(func() { ran.Store(true) }))
	p.Shutdown()
	require.True(t, ran.Load())
}

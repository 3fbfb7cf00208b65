package update

import (
	"sync"
	"testing"

	"oandarates/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestQueue_DrainEmptyDoesNotBlock(t *testing.T) {
	q := NewQueue()
	require.Empty(t, q.Drain())
	require.Empty(t, q.Drain())
}

func TestQueue_FIFOOrderPreserved(t *testing.T) {
	q := NewQueue()
	q.Push(domain.StatusMessage{Text: "first"})
	q.Push(domain.DataReadyMessage{})
	q.Push(domain.StatusMessage{Text: "last"})

	msgs := q.Drain()
	require.Len(t, msgs, 3)
	require.Equal(t, "first", msgs[0].(domain.StatusMessage).Text)
	require.IsType(t, domain.DataReadyMessage{}, msgs[1])
	require.Equal(t, "last", msgs[2].(domain.StatusMessage).Text)

	// drained messages are gone
	require.Empty(t, q.Drain())
}

func TestQueue_ConcurrentPushersLoseNothing(t *testing.T) {
	q := NewQueue()
	const pushers = 8
	const perPusher = 100

	var wg sync.WaitGroup
	for i := 0; i < pushers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < perPusher; n++ {
				q.Push(domain.StatusMessage{Text: "msg"})
			}
		}()
	}
	wg.Wait()

	require.Len(t, q.Drain(), pushers*perPusher)
}

package update

import (
	"sync"

	"oandarates/internal/domain"
)

// Queue is the FIFO handoff from background jobs to the presentation layer.
// Push may be called from any goroutine; Drain never blocks and returns
// everything queued so far, preserving push order. Messages queue without
// bound until drained.
type Queue struct {
	mu    sync.Mutex
	items []domain.UpdateMessage
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(msg domain.UpdateMessage) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// Drain swaps out the backlog. An empty queue yields a nil slice.
func (q *Queue) Drain() []domain.UpdateMessage {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

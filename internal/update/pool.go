package update

import "sync"

// WorkerPool runs fetch jobs off the presentation goroutine. The pool is
// deliberately tiny: at most one manual and one automatic job are ever
// meaningful at the same time.
type WorkerPool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	p := &WorkerPool{
		tasks: make(chan func(), 2*size),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Submit enqueues a task; returns false once the pool is shutting down.
func (p *WorkerPool) Submit(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Shutdown stops accepting tasks and waits for in-flight and queued tasks
// to finish. Idempotent.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

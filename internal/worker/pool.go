package worker

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Task func()

// Pool runs submitted tasks on a fixed set of goroutines. The queue is
// bounded; Submit never blocks the caller.
type Pool struct {
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	jobs   chan Task
	depth  prometheus.Gauge
}

// NewPool starts n workers over a queue of size queue. depth may be nil.
func NewPool(n, queue int, depth prometheus.Gauge) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan Task, queue), depth: depth}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.setDepth()
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("worker task panicked", "err", rec)
				}
			}()
			job()
		}()
	}
}

// Submit enqueues f and reports whether it was accepted. It is refused when
// the queue is full or the pool has been stopped.
func (p *Pool) Submit(f Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- f:
		p.setDepth()
		return true
	default:
		return false
	}
}

// Stop refuses new work and waits for queued tasks to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) setDepth() {
	if p.depth != nil {
		p.depth.Set(float64(len(p.jobs)))
	}
}

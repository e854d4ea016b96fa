package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines that execute invocation batches.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so a batch of unevenly sized tiles still finishes close to the
// slowest single tile.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu is held shared by Run while it enqueues and exclusively by Close
	// while it closes done, so no job lands in a queue nobody drains.
	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			job()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run distributes jobs round-robin and waits until every job has returned.
//
// Jobs that have not started when ctx is cancelled are skipped; jobs already
// running are not interrupted. Run returns ctx.Err() if any job was skipped.
// On a closed pool Run executes nothing and returns nil. A Close issued
// while Run is enqueuing waits until every job is queued; queued jobs are
// still executed before the workers stop.
func (p *Pool) Run(ctx context.Context, jobs []func()) error {
	if len(jobs) == 0 {
		return nil
	}
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil
	}

	var (
		pending sync.WaitGroup
		skipped atomic.Bool
	)
	pending.Add(len(jobs))

	for i, job := range jobs {
		wrapped := func() {
			defer pending.Done()
			if ctx.Err() != nil {
				skipped.Store(true)
				return
			}
			job()
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-ctx.Done():
			skipped.Store(true)
			pending.Done()
		}
	}
	p.mu.RUnlock()

	pending.Wait()
	if skipped.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		return context.Canceled
	}
	return nil
}

// Close stops accepting work, finishes queued jobs and stops all workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.running.Store(false)
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

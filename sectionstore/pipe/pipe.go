// Package pipe serializes container mutations. It provides a FIFO pipeline that
// runs each queued (mutate, notify) pair to completion before starting the next,
// so that every mutation observes the committed effect of all mutations enqueued
// before it, regardless of which goroutine enqueued them.
package pipe

import "sync"

// Operation is a queued mutation paired with its notification step. Mutate
// commits the state change; Notify reports it to observers. The pipeline never
// interleaves another operation between the two steps.
type Operation struct {
	Mutate func()
	Notify func()
}

// Pipe is a FIFO serializer with at most one operation in flight. Enqueue
// returns immediately; the operation runs later on an internal drain goroutine.
//
// Operations enqueued in order O1, O2, ... run in that order, and Oi's Notify
// completes before Oi+1's Mutate begins. The zero value is not usable; create
// instances with New.
type Pipe struct {
	mu       sync.Mutex
	queue    []Operation
	draining bool
}

// New returns an idle pipeline.
func New() *Pipe {
	return &Pipe{}
}

// Enqueue appends a (mutate, notify) pair to the pipeline. Either function may
// be nil. If the pipeline is idle a drain goroutine is started; otherwise the
// running drain picks the pair up in turn.
//
// Enqueue is safe to call from any goroutine, including from within a Notify
// callback; a pair enqueued during notification simply runs after the current
// operation completes.
func (p *Pipe) Enqueue(mutate, notify func()) {
	p.mu.Lock()
	p.queue = append(p.queue, Operation{Mutate: mutate, Notify: notify})
	start := !p.draining
	if start {
		p.draining = true
	}
	p.mu.Unlock()

	if start {
		go p.drain()
	}
}

// Barrier enqueues a no-op mutation whose notify step is fn. When fn runs, every
// operation enqueued before the barrier has fully committed and notified. This
// is the only way to obtain a read guaranteed to reflect a prior burst of
// mutations.
func (p *Pipe) Barrier(fn func()) {
	p.Enqueue(nil, fn)
}

// Wait blocks until all operations enqueued before the call have drained. It
// must not be called from within a Mutate or Notify step, which would wait on
// the pipeline from inside the pipeline.
func (p *Pipe) Wait() {
	done := make(chan struct{})
	p.Barrier(func() { close(done) })
	<-done
}

// Pending reports the number of operations queued but not yet started.
func (p *Pipe) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// drain pops and runs operations until the queue empties. Exactly one drain
// goroutine exists at a time, which is what serializes the pipeline: the next
// Enqueue on an empty queue starts a new one, ordered after this goroutine's
// final unlock.
func (p *Pipe) drain() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.draining = false
			p.mu.Unlock()
			return
		}
		op := p.queue[0]
		p.queue[0] = Operation{}
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if op.Mutate != nil {
			op.Mutate()
		}
		if op.Notify != nil {
			op.Notify()
		}
	}
}

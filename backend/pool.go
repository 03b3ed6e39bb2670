// Package backend provides a concrete goroutine-pool [keydist.Executor],
// for callers who don't already have a multi-threaded backend to plug
// in. It is a minimal fixed-size worker pool, rebuilt around
// golang.org/x/sync/errgroup for fan-out and shutdown coordination, the
// way chainguard-dev/terraform-infra-common's workqueue dispatcher uses
// errgroup to run several keys' callbacks concurrently.
package backend

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-size goroutine pool implementing keydist.Executor.
// Tasks submitted after the pool is closed, or once its queue is full,
// fail fast rather than blocking the caller indefinitely.
type Pool struct {
	queue  chan func()
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// New starts a Pool with the given number of worker goroutines and a
// bounded task queue of the given capacity. workers and queueCapacity
// are both clamped to at least 1.
func New(workers, queueCapacity int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueCapacity < 1 {
		queueCapacity = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	p := &Pool{
		queue:  make(chan func(), queueCapacity),
		group:  group,
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		group.Go(p.worker)
	}

	return p
}

func (p *Pool) worker() error {
	for {
		select {
		case <-p.ctx.Done():
			return nil
		case fn, ok := <-p.queue:
			if !ok {
				return nil
			}
			runSafely(fn)
		}
	}
}

func runSafely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("keydist/backend: recovered panic:", r)
		}
	}()
	fn()
}

// ErrClosed is returned by Execute once the pool has been shut down.
var ErrClosed = errors.New("keydist/backend: pool closed")

// ErrQueueFull is returned by Execute when the task queue has no spare
// capacity; callers should treat this like any other scheduling failure.
var ErrQueueFull = errors.New("keydist/backend: queue full")

// Execute implements keydist.Executor: it enqueues task for one of the
// pool's workers to run, failing fast if the pool is closed or its
// queue is full.
func (p *Pool) Execute(task func()) error {
	select {
	case <-p.ctx.Done():
		return ErrClosed
	default:
	}

	select {
	case p.queue <- task:
		return nil
	case <-p.ctx.Done():
		return ErrClosed
	default:
		return ErrQueueFull
	}
}

// Close stops accepting new tasks and waits for in-flight tasks to
// finish, discarding anything still queued.
func (p *Pool) Close() error {
	p.cancel()
	return p.group.Wait()
}

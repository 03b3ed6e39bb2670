package keydist

import "time"

// Distributor is the public façade: it routes submissions to per-key
// workers, owns the key→worker map, and hands out key-scoped submitter
// views. The map itself is the only shared mutable structure, and it is
// only ever touched under the key's stripe lock - there is no global
// lock.
type Distributor struct {
	executor         Executor
	sLock            *StripedLock
	maxTasksPerCycle int
	hook             FailureHook
	metrics          *Metrics

	workers map[any]*keyWorker
}

// New constructs a Distributor that dispatches to executor. executor
// must eventually run any task given to it; if it fails to schedule one
// synchronously, addTask returns a [SchedulingFailedError].
func New(executor Executor, opts ...Option) (*Distributor, error) {
	if executor == nil {
		return nil, &InvalidArgumentError{Message: "executor must not be nil"}
	}
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Distributor{
		executor:         executor,
		sLock:            NewStripedLock(cfg.expectedConcurrency),
		maxTasksPerCycle: cfg.maxTasksPerCycle,
		hook:             cfg.hook,
		metrics:          newMetrics(cfg.registerer),
		workers:          make(map[any]*keyWorker, cfg.expectedConcurrency),
	}, nil
}

// Executor returns the backend executor this distributor dispatches to.
func (d *Distributor) Executor() Executor {
	return d.executor
}

// addTask validates key and t, then either enqueues t onto key's
// existing worker or installs a fresh one. The worker's map insertion
// happens under key's stripe lock, so it is atomic with respect to any
// concurrent addTask for the same key; the first dispatch to the
// executor happens only after that lock is released, since a
// synchronous executor (e.g. [SameThreadExecutor]) would otherwise
// re-enter the same, non-reentrant stripe mutex from w.run and
// deadlock. The single-runner invariant does not depend on the dispatch
// itself being under the lock - only on the map insertion being - see
// keyWorker.run's proof sketch.
func (d *Distributor) addTask(key any, t task) error {
	if key == nil {
		return &InvalidArgumentError{Message: "key must not be nil"}
	}
	if t == nil {
		return &InvalidArgumentError{Message: "task must not be nil"}
	}

	handle := d.sLock.Lock(key)
	w, ok := d.workers[key]
	if ok {
		w.enqueue(t)
		handle.Unlock()
		d.metrics.TasksSubmitted.Inc()
		return nil
	}

	w = newKeyWorker(d, key, t)
	d.workers[key] = w
	d.metrics.ActiveWorkers.Inc()
	handle.Unlock()

	if err := d.executor.Execute(w.run); err != nil {
		handle = d.sLock.Lock(key)
		// Remove the worker if it is still the one installed under key,
		// so a retry installs a fresh one. The check is by identity
		// only: tasks that concurrent addTask calls enqueued onto it in
		// the window since unlock are removed along with it and never
		// run.
		if d.workers[key] == w {
			delete(d.workers, key)
			d.metrics.ActiveWorkers.Dec()
		}
		handle.Unlock()
		return &SchedulingFailedError{Cause: err}
	}
	d.metrics.TasksSubmitted.Inc()
	return nil
}

// Execute submits fn to run under key, once prior tasks for key have
// run, returning only a scheduling error (if any): there is no future to
// observe completion or failure. fn's own errors, if it panics, are
// routed to the distributor's [FailureHook] (see reportFailure).
func (d *Distributor) Execute(key any, fn func()) error {
	if fn == nil {
		return &InvalidArgumentError{Message: "task must not be nil"}
	}
	return d.addTask(key, func() error {
		fn()
		return nil
	})
}

// Submit runs fn under key and settles the returned [Future] with
// result once fn returns (or with an [ExecutionFailedError] if fn
// panics). This is the "runnable + fixed result" overload.
func Submit[T any](d *Distributor, key any, fn func(), result T) (*Future[T], error) {
	if fn == nil {
		return nil, &InvalidArgumentError{Message: "task must not be nil"}
	}
	f := newFuture(key, func() (T, error) {
		fn()
		return result, nil
	})
	if err := d.addTask(key, f.runTask); err != nil {
		return nil, err
	}
	return f, nil
}

// SubmitResult runs fn under key and settles the returned [Future] with
// fn's return value, or the error fn returned. This is the "callable"
// overload.
func SubmitResult[T any](d *Distributor, key any, fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, &InvalidArgumentError{Message: "task must not be nil"}
	}
	f := newFuture(key, fn)
	if err := d.addTask(key, f.runTask); err != nil {
		return nil, err
	}
	return f, nil
}

// ExecutorForKey returns an [Executor] view bound to key: every task
// passed to its Execute method is submitted through this distributor
// under that key.
func (d *Distributor) ExecutorForKey(key any) (Executor, error) {
	if key == nil {
		return nil, &InvalidArgumentError{Message: "key must not be nil"}
	}
	return &keyedSubmitter{d: d, key: key}, nil
}

// SubmitterForKey returns a [Submitter] view bound to key: all of its
// submit operations forward to this distributor under that key.
func (d *Distributor) SubmitterForKey(key any) (*Submitter, error) {
	if key == nil {
		return nil, &InvalidArgumentError{Message: "key must not be nil"}
	}
	return &Submitter{d: d, key: key}, nil
}

// Metrics returns the distributor's operational counters and gauges.
func (d *Distributor) Metrics() *Metrics {
	return d.metrics
}

// reportFailure routes a failure observed by one of this distributor's
// workers to its configured hook (whatever was set via
// [WithFailureHook], or else the global hook as it was when New ran).
func (d *Distributor) reportFailure(key any, source string, err error) {
	d.hook.HandleFailure(FailureEntry{
		Key:    key,
		Source: source,
		Err:    err,
		Time:   time.Now(),
	})
}

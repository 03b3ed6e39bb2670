package keydist

// task is the unit queued on a keyWorker's FIFO. It returns an error if
// the underlying work failed; the worker loop routes that error to the
// distributor's failure hook and continues with the rest of the batch.
type task func() error

// keyWorker owns one key's FIFO and drains it under cooperative
// yielding. Exactly one instance of a worker for a given live key is
// ever dispatched to the backend executor at a time (the single-runner
// invariant) - see run for the proof sketch, ported from
// TaskExecutorDistributor.TaskQueueWorker in the original sources.
type keyWorker struct {
	key   any
	queue []task

	d *Distributor
}

func newKeyWorker(d *Distributor, key any, first task) *keyWorker {
	w := &keyWorker{
		key:   key,
		queue: make([]task, 0, 8),
		d:     d,
	}
	w.queue = append(w.queue, first)
	return w
}

// enqueue appends a task to the worker's FIFO. Callers must hold the
// stripe lock for the worker's key.
func (w *keyWorker) enqueue(t task) {
	w.queue = append(w.queue, t)
}

// run drains the FIFO, running tasks inline in FIFO order, yielding the
// backend thread back to the executor every maxTasksPerCycle tasks so
// one hot key cannot starve others.
//
// Single-runner invariant proof sketch: a worker is only dispatched to
// the backend (i) once, by addTask, right after it installs the worker
// into the map, or (ii) by its own running instance, at the yield point
// below. In case (i), although the dispatch itself happens after the
// stripe lock that protected the map insertion is released (a
// synchronous executor would otherwise deadlock re-entering that same
// lock from here), no other addTask call can have installed a second
// worker for this key in between: the map already holds this one, so a
// concurrent addTask for the same key finds it and enqueues onto it
// instead of creating and dispatching its own. In case (ii) the worker
// has not been removed from the map (removal only happens when this
// same loop observes an empty FIFO under the stripe lock, or when
// addTask observes its own dispatch failed), so no concurrent addTask
// call will install - and therefore dispatch - a second instance for
// this key either. Map removal and FIFO-empty observation happen in the
// same critical section, so at most one worker instance per key is ever
// runnable.
func (w *keyWorker) run() {
	consumed := 0
	for {
		var batch []task

		handle := w.d.sLock.Lock(w.key)
		switch {
		case len(w.queue) == 0:
			delete(w.d.workers, w.key)
			w.d.metrics.ActiveWorkers.Dec()
			handle.Unlock()
			return

		case consumed >= w.d.maxTasksPerCycle:
			w.d.metrics.Yields.Inc()
			handle.Unlock()
			if err := w.d.executor.Execute(w.run); err != nil {
				// The backend can no longer make progress on this key.
				// The worker stays installed in the map (it still holds
				// pending tasks), so surface the failure rather than
				// silently dropping the remaining queue.
				w.d.reportFailure(w.key, "task", &SchedulingFailedError{Cause: err})
			}
			return

		default:
			take := w.d.maxTasksPerCycle - consumed
			if take >= len(w.queue) {
				// the whole queue fits in this cycle: swap it for a fresh
				// one instead of copying a subset.
				batch = w.queue
				w.queue = make([]task, 0, 8)
			} else {
				// full-slice expression so later appends to either half
				// can't alias the other's backing array.
				batch = w.queue[:take:take]
				w.queue = w.queue[take:]
			}
			consumed += len(batch)
			handle.Unlock()
		}

		for _, t := range batch {
			runTaskSafely(w, t)
		}
	}
}

func runTaskSafely(w *keyWorker, t task) {
	defer func() {
		w.d.metrics.TasksExecuted.Inc()
		if r := recover(); r != nil {
			w.d.metrics.TasksFailed.Inc()
			w.d.reportFailure(w.key, "task", panicError(r))
		}
	}()
	if err := t(); err != nil {
		w.d.metrics.TasksFailed.Inc()
		w.d.reportFailure(w.key, "task", err)
	}
}

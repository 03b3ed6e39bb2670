// Package keydist distributes tasks across a multi-threaded backend such
// that tasks submitted under the same key run serially, in the order they
// were submitted, while tasks under different keys run in parallel.
//
// # Architecture
//
// A [Distributor] owns a [StripedLock] (one fixed mutex per hash bucket,
// independent of the number of distinct keys observed) and a map from key
// to [keyWorker]. Submitting a task under a key either enqueues it onto an
// existing worker's FIFO or installs a fresh worker and dispatches it once
// to the backend [Executor]. Exactly one worker instance per key is ever
// runnable at a time (the single-runner invariant); see keyWorker.run for
// the proof sketch.
//
// Results and failures are carried back to callers via [Future], a
// completable, listener-bearing future with cancellation and
// context-scoped waits.
package keydist

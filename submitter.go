package keydist

// Submitter is a capability bound to a single key: every method forwards
// to the distributor that produced it, under that key. It holds no
// state beyond the key reference.
type Submitter struct {
	d   *Distributor
	key any
}

// Execute submits fn as fire-and-forget work under the bound key.
func (s *Submitter) Execute(fn func()) error {
	return s.d.Execute(s.key, fn)
}

// Submit runs fn under the bound key and settles the returned future
// with an empty struct value once fn returns.
func (s *Submitter) Submit(fn func()) (*Future[struct{}], error) {
	return Submit(s.d, s.key, fn, struct{}{})
}

// SubmitResultFor runs fn under s's bound key and settles the returned
// future with fn's return value. A package-level function, since Go
// methods cannot carry their own type parameters.
func SubmitResultFor[T any](s *Submitter, fn func() (T, error)) (*Future[T], error) {
	return SubmitResult(s.d, s.key, fn)
}

// keyedSubmitter adapts a [Submitter] to the plain [Executor] interface,
// for callers that only want ExecutorForKey's fire-and-forget view.
type keyedSubmitter struct {
	d   *Distributor
	key any
}

func (k *keyedSubmitter) Execute(task func()) error {
	return k.d.Execute(k.key, task)
}

// SameThreadExecutor runs every task synchronously on the calling
// goroutine. It differs from calling the task directly only in that a
// panic never propagates to the caller: it is recovered and routed to
// the global [FailureHook] instead.
//
// Use it as a backend [Executor] (for strictly sequential distributors)
// or as the inline fallback [Executor] passed to [Future.AddListener].
type SameThreadExecutor struct{}

// Execute runs task synchronously, catching and reporting any panic.
func (SameThreadExecutor) Execute(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			reportFailure(nil, "same-thread-executor", panicError(r))
		}
	}()
	task()
	return nil
}

// Submit runs task synchronously and returns an already-settled future
// carrying result, or an [ExecutionFailedError] if task panicked.
func (SameThreadExecutor) Submit(task func(), result any) *Future[any] {
	return submitSync(func() (any, error) {
		task()
		return result, nil
	})
}

// SubmitResult runs task synchronously and returns an already-settled
// future carrying its return value or error.
func (SameThreadExecutor) SubmitResult(task func() (any, error)) *Future[any] {
	return submitSync(task)
}

func submitSync(fn func() (any, error)) *Future[any] {
	f := newFuture[any](nil, fn)
	_ = f.runTask()
	return f
}

package keydist

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// FailureEntry describes a single failure delivered to a [FailureHook]:
// a task panicking or returning an error while the worker loop must
// continue, a listener panicking during inline dispatch, or the
// [SameThreadExecutor] catching a failure from Execute.
type FailureEntry struct {
	// Key is the key whose worker or future observed the failure, nil
	// for failures with no associated key (e.g. a panic caught by
	// [SameThreadExecutor]).
	Key any
	// Source names where the failure was observed: "task", "listener",
	// or "same-thread-executor".
	Source string
	// Err is the failure itself.
	Err error
	// Time is when the hook was invoked.
	Time time.Time
}

// FailureHook is the process-wide sink for failures the distributor
// cannot return synchronously to a caller. Exactly one implementation is
// active at a time; install a replacement with [SetFailureHook].
type FailureHook interface {
	HandleFailure(entry FailureEntry)
}

// FailureHookFunc adapts a function to a [FailureHook].
type FailureHookFunc func(entry FailureEntry)

func (f FailureHookFunc) HandleFailure(entry FailureEntry) { f(entry) }

// stderrFailureHook is the default [FailureHook], logging to stderr.
// Modeled on eventloop/logging.go's DefaultLogger: a small mutex-guarded
// writer rather than a pull from the structured-logging framework, since
// that is what the teacher itself does for this exact concern (see
// DESIGN.md).
type stderrFailureHook struct {
	mu  sync.Mutex
	out *os.File
}

func (h *stderrFailureHook) HandleFailure(entry FailureEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if entry.Key != nil {
		fmt.Fprintf(h.out, "keydist: %s: key=%v: %v\n", entry.Source, entry.Key, entry.Err)
	} else {
		fmt.Fprintf(h.out, "keydist: %s: %v\n", entry.Source, entry.Err)
	}
}

// DefaultFailureHook returns the built-in [FailureHook], which logs to
// os.Stderr.
func DefaultFailureHook() FailureHook {
	return &stderrFailureHook{out: os.Stderr}
}

var globalHook struct {
	sync.RWMutex
	hook FailureHook
}

// SetFailureHook installs the process-wide [FailureHook]. Passing nil
// restores [DefaultFailureHook].
func SetFailureHook(hook FailureHook) {
	globalHook.Lock()
	defer globalHook.Unlock()
	globalHook.hook = hook
}

func getFailureHook() FailureHook {
	globalHook.RLock()
	defer globalHook.RUnlock()
	if globalHook.hook != nil {
		return globalHook.hook
	}
	return defaultHook
}

var defaultHook = DefaultFailureHook()

func reportFailure(key any, source string, err error) {
	getFailureHook().HandleFailure(FailureEntry{
		Key:    key,
		Source: source,
		Err:    err,
		Time:   time.Now(),
	})
}

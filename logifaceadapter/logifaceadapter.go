// Package logifaceadapter bridges keydist's FailureHook to a
// github.com/joeycumines/logiface Logger, so the structured-logging half
// of the reference corpus (logiface + its stumpy backend) has a concrete
// home alongside the plain stderr default in the keydist package itself.
package logifaceadapter

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/joeycumines/go-keydist"
)

// Hook adapts a *logiface.Logger[*stumpy.Event] to keydist.FailureHook,
// emitting one structured error-level event per failure.
type Hook struct {
	logger *logiface.Logger[*stumpy.Event]
}

// New wraps logger as a keydist.FailureHook.
func New(logger *logiface.Logger[*stumpy.Event]) *Hook {
	return &Hook{logger: logger}
}

// NewDefault builds a Hook around a stumpy logger writing JSON lines to
// os.Stderr, for callers who just want structured output without
// configuring logiface themselves.
func NewDefault() *Hook {
	return New(stumpy.L.New(stumpy.L.WithStumpy()))
}

// HandleFailure implements keydist.FailureHook.
func (h *Hook) HandleFailure(entry keydist.FailureEntry) {
	b := h.logger.Err().
		Str(`source`, entry.Source).
		Err(entry.Err)
	if entry.Key != nil {
		b = b.Str(`key`, fmt.Sprint(entry.Key))
	}
	b.Log(`keydist task failure`)
}

package logifaceadapter

import (
	"errors"
	"testing"

	"github.com/joeycumines/go-keydist"
)

func TestHandleFailure_DoesNotPanicWithOrWithoutKey(t *testing.T) {
	h := NewDefault()

	h.HandleFailure(keydist.FailureEntry{
		Key:    "some-key",
		Source: "task",
		Err:    errors.New("boom"),
	})

	h.HandleFailure(keydist.FailureEntry{
		Source: "same-thread-executor",
		Err:    errors.New("boom, no key"),
	})
}

func TestHook_ImplementsFailureHook(t *testing.T) {
	var _ keydist.FailureHook = NewDefault()
}

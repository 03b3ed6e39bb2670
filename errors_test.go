package keydist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionFailedError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ExecutionFailedError{Cause: cause}
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "boom")
}

func TestSchedulingFailedError_Unwrap(t *testing.T) {
	cause := errors.New("no capacity")
	err := &SchedulingFailedError{Cause: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestTimeoutError_Unwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := &TimeoutError{Cause: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestInvalidArgumentError_Message(t *testing.T) {
	err := &InvalidArgumentError{Message: "key must not be nil"}
	assert.Equal(t, "keydist: invalid argument: key must not be nil", err.Error())
}

func TestPanicError_WrapsErrorValue(t *testing.T) {
	cause := errors.New("inner")
	err := panicError(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestPanicError_NonErrorValue(t *testing.T) {
	err := panicError("raw string panic")
	assert.Contains(t, err.Error(), "raw string panic")
}

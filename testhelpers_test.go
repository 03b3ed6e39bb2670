package keydist

import "time"

// shared polling parameters for require.Eventually / assert.Eventually
// across this package's tests.
const (
	eventuallyTimeout = time.Second
	eventuallyTick    = time.Millisecond
)

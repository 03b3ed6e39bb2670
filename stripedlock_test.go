package keydist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStripedLock_RoundsUpToPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		0:  1,
		1:  1,
		2:  2,
		3:  4,
		8:  8,
		9:  16,
		17: 32,
	}
	for in, want := range cases {
		lock := NewStripedLock(in)
		assert.Equal(t, want, lock.Size(), "expectedConcurrency=%d", in)
	}
}

func TestStripedLock_StableForEqualKeys(t *testing.T) {
	lock := NewStripedLock(16)
	a := lock.indexFor("same-key")
	b := lock.indexFor("same-key")
	assert.Equal(t, a, b)
}

func TestStripedLock_LockUnlockRoundTrip(t *testing.T) {
	lock := NewStripedLock(4)
	handle := lock.Lock("k")
	handle.Unlock()

	// the stripe is free again
	handle2 := lock.Lock("k")
	handle2.Unlock()
}

func TestStripedLock_DifferentTypesOfKeys(t *testing.T) {
	lock := NewStripedLock(8)
	type structKey struct{ A, B int }
	keys := []any{"str", 42, structKey{1, 2}, int64(7)}
	for _, k := range keys {
		h := lock.Lock(k)
		h.Unlock()
	}
}

package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNewDiffersBySeed(t *testing.T) {
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(7, 3), Derive(7, 3))

	seen := make(map[int64]int)
	for i := 0; i < 1000; i++ {
		seed := Derive(7, i)
		if prev, ok := seen[seed]; ok {
			t.Fatalf("Derive(7, %d) collides with index %d", i, prev)
		}
		seen[seed] = i
	}
	assert.NotEqual(t, Derive(7, 0), Derive(8, 0))
}

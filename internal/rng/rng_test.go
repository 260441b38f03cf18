package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestUniformRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 200; i++ {
		v := r.Uniform(2, 5)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 5.0)
	}
}

func TestUniformDegenerateInterval(t *testing.T) {
	r := New(1)
	assert.Equal(t, 3.0, r.Uniform(3, 3))
	assert.Equal(t, 3.0, r.Uniform(3, 1))
}

func TestIndexRange(t *testing.T) {
	r := New(3)
	for i := 0; i < 200; i++ {
		v := r.Index(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestIndexPanicsOnNonPositive(t *testing.T) {
	r := New(3)
	assert.Panics(t, func() { r.Index(0) })
	assert.Panics(t, func() { r.Index(-1) })
}

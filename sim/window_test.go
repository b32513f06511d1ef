package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindow_EvictsOldestFirst(t *testing.T) {
	// GIVEN a window of capacity 3
	w := NewSlidingWindow(3)

	// WHEN four samples are pushed
	for _, v := range []float64{1, 2, 3, 4} {
		w.Push(v)
	}

	// THEN the first sample was evicted and order is oldest first
	assert.Equal(t, []float64{2, 3, 4}, w.Values())
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, 3, w.Cap())
	assert.InDelta(t, 3.0, w.Mean(), 1e-12)
}

func TestSlidingWindow_PartialFill_MeanOfRetained(t *testing.T) {
	w := NewSlidingWindow(5)
	w.Push(4)
	w.Push(8)
	assert.Equal(t, 2, w.Len())
	assert.InDelta(t, 6.0, w.Mean(), 1e-12)
}

func TestSlidingWindow_Empty_MeanIsZero(t *testing.T) {
	assert.Equal(t, 0.0, NewSlidingWindow(2).Mean())
}

func TestSlidingWindow_WrapsManyTimes(t *testing.T) {
	w := NewSlidingWindow(2)
	for i := 1; i <= 101; i++ {
		w.Push(float64(i))
	}
	assert.Equal(t, []float64{100, 101}, w.Values())
	assert.InDelta(t, 100.5, w.Mean(), 1e-12)
}

func TestSlidingWindow_Reset_ClearsSamples(t *testing.T) {
	w := NewSlidingWindow(2)
	w.Push(7)
	w.Push(9)
	w.Reset()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Values())
	w.Push(3)
	assert.Equal(t, []float64{3}, w.Values())
}

func TestNewSlidingWindow_ZeroCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewSlidingWindow(0) })
}

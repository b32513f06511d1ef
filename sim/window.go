package sim

// SlidingWindow is a fixed-capacity FIFO of float64 samples backed by a ring buffer.
// When full, Push evicts the oldest sample.
//
// Thread-safety: NOT thread-safe.
type SlidingWindow struct {
	buf   []float64
	head  int // index of the oldest sample
	count int
}

// NewSlidingWindow creates an empty window. Panics if capacity < 1.
func NewSlidingWindow(capacity int) *SlidingWindow {
	if capacity < 1 {
		panic("sliding window capacity must be >= 1")
	}
	return &SlidingWindow{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample if the window is full.
func (w *SlidingWindow) Push(v float64) {
	if w.count < len(w.buf) {
		w.buf[(w.head+w.count)%len(w.buf)] = v
		w.count++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

// Mean returns the arithmetic mean of the retained samples, or 0 when empty.
func (w *SlidingWindow) Mean() float64 {
	if w.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < w.count; i++ {
		sum += w.buf[(w.head+i)%len(w.buf)]
	}
	return sum / float64(w.count)
}

// Len returns the number of retained samples.
func (w *SlidingWindow) Len() int { return w.count }

// Cap returns the window capacity.
func (w *SlidingWindow) Cap() int { return len(w.buf) }

// Values returns a copy of the retained samples, oldest first.
func (w *SlidingWindow) Values() []float64 {
	out := make([]float64, w.count)
	for i := range out {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// Reset discards all samples.
func (w *SlidingWindow) Reset() {
	w.head = 0
	w.count = 0
}

package filter

// bytesPerFloat64 is used for memory usage estimates.
const bytesPerFloat64 = 8

// Recursion evaluates a Design one sample at a time.
//
// Past scaled inputs and past outputs live in two fixed-size circular
// buffers of length Order. The cursor rotates through them so that each step
// overwrites the oldest slot in place; nothing is allocated or shifted after
// NewRecursion returns.
//
// A Recursion is not safe for concurrent use.
type Recursion struct {
	cx    []float64
	cy    []float64
	gain  float64
	histX []float64
	histY []float64

	// cursor indexes the most recently written slot.
	cursor int
}

// NewRecursion allocates history buffers for d. The buffers are zeroed;
// call Prime before the first Step.
func NewRecursion(d *Design) *Recursion {
	return &Recursion{
		cx:     d.Cx,
		cy:     d.Cy,
		gain:   d.Gain,
		histX:  make([]float64, d.Order),
		histY:  make([]float64, d.Order),
		cursor: d.Order - 1,
	}
}

// Prime fills the history as if raw had been applied forever, so the first
// Step starts without a transient.
func (r *Recursion) Prime(raw float64) {
	scaled := r.gain * raw
	for i := range r.histX {
		r.histX[i] = scaled
		r.histY[i] = raw
	}
	r.cursor = len(r.histX) - 1
}

// Step feeds one input sample and returns the filtered output.
//
// The current scaled input is weighted by the highest numerator tap. The
// remaining taps are walked from high to low while the cursor retreats from
// the newest slot toward the oldest, wrapping from 0 to Order-1. After the
// walk the cursor sits on the oldest slot, which is overwritten with the new
// input/output pair and becomes the newest.
func (r *Recursion) Step(x float64) float64 {
	order := len(r.histX)
	scaled := r.gain * x

	filtered := r.cx[order] * scaled
	for tap := order - 1; tap >= 0; tap-- {
		filtered += r.cx[tap]*r.histX[r.cursor] + r.cy[tap]*r.histY[r.cursor]
		if tap > 0 {
			r.cursor--
			if r.cursor < 0 {
				r.cursor = order - 1
			}
		}
	}

	r.histX[r.cursor] = scaled
	r.histY[r.cursor] = filtered

	return filtered
}

// Order returns the filter order (history length).
func (r *Recursion) Order() int {
	return len(r.histX)
}

// Cursor returns the index of the most recently written slot.
func (r *Recursion) Cursor() int {
	return r.cursor
}

// MemoryUsage returns the approximate memory held by taps and history, in bytes.
func (r *Recursion) MemoryUsage() int64 {
	n := len(r.cx) + len(r.cy) + len(r.histX) + len(r.histY)
	return int64(n * bytesPerFloat64)
}

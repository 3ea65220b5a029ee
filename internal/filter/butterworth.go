// Package filter provides Butterworth low-pass design and the recursive
// evaluator that runs a design sample by sample.
package filter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-sensor-filter/internal/mathutil"
)

const (
	// Normalized cutoff (cutoff/fs) must lie strictly inside (0, maxAlpha).
	maxAlpha = 0.5

	// Candidate poles are spread over one full turn of the unit circle.
	fullTurn = 2 * math.Pi

	// Every analog prototype zero sits at s = -1 before the bilinear map.
	analogZero = -1.0
)

var (
	// ErrInvalidAlpha indicates a normalized cutoff outside (0, 0.5).
	ErrInvalidAlpha = errors.New("normalized cutoff out of range")

	// ErrInvalidOrder indicates a filter order below 1.
	ErrInvalidOrder = errors.New("filter order must be at least 1")
)

// Design holds a digital Butterworth low-pass design.
//
// The numerator comes from order analog zeros at s = -1, so every digital
// zero lands at Bilinear(-1) = 1/3.
//
// Cx holds the numerator taps and Cy the negated denominator taps, both in
// ascending powers of z, so Cy[Order] == -1. Gain scales the input so that
// the filter has unity gain at DC.
type Design struct {
	Order int
	Alpha float64

	// AnalogPoles and AnalogZeros are the s-plane roots before the bilinear transform.
	AnalogPoles []complex128
	AnalogZeros []complex128

	// Poles and Zeros are in the z-plane.
	Poles []complex128
	Zeros []complex128

	Cx   []float64
	Cy   []float64
	Gain float64
}

// AnalogPoles returns the left-half-plane Butterworth poles of the given
// order on a circle of radius w1.
//
// Candidates are evenly spaced by π/order, starting at angle 0 for odd orders
// and π/(2·order) for even orders; exactly order candidates have a negative
// real part.
func AnalogPoles(order int, w1 float64) []complex128 {
	if order < 1 {
		return nil
	}

	step := math.Pi / float64(order)
	start := 0.0
	if order%2 == 0 {
		start = step / 2
	}

	poles := make([]complex128, 0, order)
	for i := 0; ; i++ {
		theta := start + float64(i)*step
		if theta >= fullTurn {
			break
		}
		p := cmplx.Rect(1, theta)
		if real(p) < 0 {
			poles = append(poles, p*complex(w1, 0))
		}
	}

	return poles
}

// DesignButterworth designs an order-N Butterworth low-pass filter with
// normalized cutoff alpha = cutoff/fs.
//
// The cutoff is prewarped, then the analog poles and the order zeros at
// s = -1 are mapped with the bilinear transform. Pole and zero polynomials
// are expanded over complex arithmetic and only their real parts are kept.
func DesignButterworth(order int, alpha float64) (*Design, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	// Negated form also rejects NaN.
	if !(alpha > 0 && alpha < maxAlpha) {
		return nil, fmt.Errorf("%w: alpha=%v", ErrInvalidAlpha, alpha)
	}

	// Prewarp the cutoff for the bilinear transform.
	warped := math.Tan(math.Pi*alpha) / math.Pi
	w1 := 2 * math.Pi * warped

	analog := AnalogPoles(order, w1)

	poles := make([]complex128, len(analog))
	for i, p := range analog {
		poles[i] = mathutil.Bilinear(p)
	}

	analogZeros := make([]complex128, order)
	zeros := make([]complex128, order)
	for i := range zeros {
		analogZeros[i] = complex(analogZero, 0)
		zeros[i] = mathutil.Bilinear(analogZeros[i])
	}

	cx := mathutil.RealParts(mathutil.ExpandRoots(zeros))
	cy := mathutil.Negate(mathutil.RealParts(mathutil.ExpandRoots(poles)))

	ratio := mathutil.SumCoefficients(cx) / mathutil.SumCoefficients(cy)

	return &Design{
		Order:       order,
		Alpha:       alpha,
		AnalogPoles: analog,
		AnalogZeros: analogZeros,
		Poles:       poles,
		Zeros:       zeros,
		Cx:          cx,
		Cy:          cy,
		Gain:        -1 / ratio,
	}, nil
}

// Response returns the complex frequency response at normalized frequency f
// (cycles per sample), including the DC gain correction.
func (d *Design) Response(f float64) complex128 {
	z := cmplx.Rect(1, 2*math.Pi*f)
	var num, den complex128
	for i := len(d.Cx) - 1; i >= 0; i-- {
		num = num*z + complex(d.Cx[i], 0)
		den = den*z - complex(d.Cy[i], 0)
	}
	return complex(d.Gain, 0) * num / den
}

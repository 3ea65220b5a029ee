// Package mathutil provides the complex-plane helpers used by filter design:
// the bilinear transform and polynomial expansion from roots.
package mathutil

import (
	"github.com/tphakala/simd/f64"
)

// Bilinear maps an s-plane point to the z-plane using z = (2 + s) / (2 - s).
//
// The s-plane point must already be normalized to the sampling rate
// (prewarped frequencies in units of 2π·f/fs).
func Bilinear(s complex128) complex128 {
	return (bilinearNumerator + s) / (bilinearNumerator - s)
}

// ExpandRoots returns the coefficients of Π (z - r) over all roots.
//
// Coefficients are ordered by ascending power of z: c[i] multiplies z^i, so
// the result has len(roots)+1 entries and c[len(roots)] == 1.
// The polynomial is built by multiplying one (z - r) factor at a time,
// starting from the constant polynomial 1.
func ExpandRoots(roots []complex128) []complex128 {
	coeffs := make([]complex128, len(roots)+1)
	coeffs[0] = 1

	for i, r := range roots {
		// Degree grows from i to i+1.
		coeffs[i+1] = coeffs[i]
		for j := i; j >= 1; j-- {
			coeffs[j] = coeffs[j-1] - r*coeffs[j]
		}
		coeffs[0] = -r * coeffs[0]
	}

	return coeffs
}

// RealParts discards the imaginary component of each coefficient.
// For roots that come in conjugate pairs the imaginary parts cancel.
func RealParts(coeffs []complex128) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}

// SumCoefficients evaluates a real polynomial at z = 1.
func SumCoefficients(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return f64.Sum(coeffs)
}

// Negate returns a copy of coeffs with every sign flipped.
func Negate(coeffs []float64) []float64 {
	out := make([]float64, len(coeffs))
	f64.Scale(out, coeffs, -1)
	return out
}

// EvalReal evaluates a real polynomial (ascending powers) at x using Horner's rule.
func EvalReal(coeffs []float64, x float64) float64 {
	var acc float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}
	return acc
}

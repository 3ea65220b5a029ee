package mathutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-sensor-filter/internal/testutil"
)

// TestBilinear tests the s-plane to z-plane mapping on known points.
func TestBilinear(t *testing.T) {
	tests := []struct {
		name     string
		s        complex128
		expected complex128
	}{
		{"DC maps to z=1", 0, 1},
		{"s=-2 maps to origin", -2, 0},
		{"s=-1 maps to 1/3", -1, complex(1.0/3.0, 0)},
		{"imaginary axis maps to unit circle", complex(0, 2), complex(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := Bilinear(tt.s)
			assert.InDelta(t, real(tt.expected), real(z), testutil.DefaultTolerance)
			assert.InDelta(t, imag(tt.expected), imag(z), testutil.DefaultTolerance)
		})
	}
}

// TestBilinear_LeftHalfPlaneIsInsideUnitCircle checks stability is preserved.
func TestBilinear_LeftHalfPlaneIsInsideUnitCircle(t *testing.T) {
	for re := -5.0; re < 0; re += 0.5 {
		for im := -5.0; im <= 5.0; im += 0.5 {
			z := Bilinear(complex(re, im))
			assert.Less(t, cmplx.Abs(z), 1.0, "s=%v+%vi mapped outside unit circle", re, im)
		}
	}
}

// TestExpandRoots_RealRoots tests (z-1)(z-2) = z² - 3z + 2.
func TestExpandRoots_RealRoots(t *testing.T) {
	coeffs := ExpandRoots([]complex128{1, 2})
	require.Len(t, coeffs, 3)

	got := RealParts(coeffs)
	testutil.AssertSliceInDelta(t, []float64{2, -3, 1}, got, testutil.DefaultTolerance)
}

// TestExpandRoots_ConjugatePair tests that imaginary parts cancel for conjugate roots.
func TestExpandRoots_ConjugatePair(t *testing.T) {
	r := cmplx.Rect(0.7, math.Pi/3)
	coeffs := ExpandRoots([]complex128{r, cmplx.Conj(r)})
	require.Len(t, coeffs, 3)

	for i, c := range coeffs {
		assert.InDelta(t, 0, imag(c), testutil.DefaultTolerance, "coefficient %d has imaginary part", i)
	}

	// z² - 2·Re(r)·z + |r|²
	got := RealParts(coeffs)
	testutil.AssertSliceInDelta(t, []float64{0.49, -0.7, 1}, got, testutil.DefaultTolerance)
}

// TestExpandRoots_Empty tests that no roots yields the constant polynomial 1.
func TestExpandRoots_Empty(t *testing.T) {
	coeffs := ExpandRoots(nil)
	require.Len(t, coeffs, 1)
	assert.Equal(t, complex128(1), coeffs[0])
}

// TestExpandRoots_RootsAreZeros verifies the expanded polynomial vanishes at each root.
func TestExpandRoots_RootsAreZeros(t *testing.T) {
	roots := []complex128{-1, -1, -1, 0.5, -0.25}
	coeffs := RealParts(ExpandRoots(roots))

	for _, r := range roots {
		assert.InDelta(t, 0, EvalReal(coeffs, real(r)), testutil.DefaultTolerance,
			"polynomial does not vanish at %v", r)
	}
	assert.InDelta(t, 1, coeffs[len(coeffs)-1], testutil.DefaultTolerance, "polynomial is not monic")
}

// TestSumCoefficients tests evaluation at z = 1.
func TestSumCoefficients(t *testing.T) {
	coeffs := []float64{2, -3, 1, 4.5}
	assert.InDelta(t, EvalReal(coeffs, 1), SumCoefficients(coeffs), testutil.DefaultTolerance)
	assert.Zero(t, SumCoefficients(nil))
}

// TestNegate tests sign flipping without aliasing the input.
func TestNegate(t *testing.T) {
	in := []float64{1, -2, 0, 3.5}
	out := Negate(in)

	testutil.AssertSliceInDelta(t, []float64{-1, 2, 0, -3.5}, out, 0)
	assert.Equal(t, []float64{1, -2, 0, 3.5}, in, "input must not be modified")
}

// BenchmarkExpandRoots benchmarks expansion for an 8th order polynomial.
func BenchmarkExpandRoots(b *testing.B) {
	roots := make([]complex128, 8)
	for i := range roots {
		roots[i] = cmplx.Rect(0.9, float64(i)*math.Pi/8)
	}
	for b.Loop() {
		_ = ExpandRoots(roots)
	}
}

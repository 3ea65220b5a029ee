package main

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-sensor-filter/internal/filter"
	"github.com/tphakala/go-sensor-filter/internal/mathutil"
)

// stepStats summarizes the unit step response of a design.
type stepStats struct {
	overshoot     float64 // peak above 1, as a fraction
	settleSamples int     // first sample after which |y-1| stays under settleTolerance
	tailMean      float64
	tailStdDev    float64
}

// spectrumPoint compares the analytic response with the FFT of the impulse
// response at one bin.
type spectrumPoint struct {
	freq     float64 // cycles per sample
	analytic float64 // dB
	measured float64 // dB
}

// impulseResponse runs n samples of a unit impulse through a zero-primed recursion.
func impulseResponse(d *filter.Design, n int) []float64 {
	r := filter.NewRecursion(d)
	r.Prime(0)
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}
		out[i] = r.Step(x)
	}
	return out
}

// stepResponse runs n samples of a unit step through a zero-primed recursion.
func stepResponse(d *filter.Design, n int) []float64 {
	r := filter.NewRecursion(d)
	r.Prime(0)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Step(1)
	}
	return out
}

// analyzeStep computes overshoot, settling time and tail statistics.
func analyzeStep(step []float64) stepStats {
	s := stepStats{
		overshoot:     math.Max(0, floats.Max(step)-1),
		settleSamples: len(step),
	}
	for i := len(step) - 1; i >= 0; i-- {
		if math.Abs(step[i]-1) > settleTolerance {
			break
		}
		s.settleSamples = i
	}

	tail := step[len(step)*tailNumerator/tailDenominator:]
	s.tailMean, s.tailStdDev = stat.MeanStdDev(tail, nil)
	return s
}

// dcGain evaluates the normalized transfer function at z = 1.
func dcGain(d *filter.Design) float64 {
	return d.Gain * mathutil.EvalReal(d.Cx, 1) / -mathutil.EvalReal(d.Cy, 1)
}

// spectrum returns the impulse response spectrum at the requested
// frequencies, snapped to the nearest FFT bin.
func spectrum(d *filter.Design, impulse []float64, freqs []float64) []spectrumPoint {
	fft := fourier.NewFFT(len(impulse))
	coeffs := fft.Coefficients(nil, impulse)

	points := make([]spectrumPoint, 0, len(freqs))
	for _, f := range freqs {
		bin := int(math.Round(f * float64(len(impulse))))
		if bin >= len(coeffs) {
			bin = len(coeffs) - 1
		}
		binFreq := fft.Freq(bin)
		points = append(points, spectrumPoint{
			freq:     binFreq,
			analytic: toDB(cmplx.Abs(d.Response(binFreq))),
			measured: toDB(cmplx.Abs(coeffs[bin])),
		})
	}
	return points
}

func toDB(mag float64) float64 {
	if mag <= 0 {
		return math.Inf(-1)
	}
	return decibelScale * math.Log10(mag)
}

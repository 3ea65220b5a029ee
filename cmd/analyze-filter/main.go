// Command analyze-filter prints a Butterworth design and checks its
// behavior: DC gain, the analytic response against the FFT of the impulse
// response, and the step response.
//
// Usage:
//
//	analyze-filter -order 4 -fs 100 -fc 5
package main

import (
	"flag"
	"fmt"
	"math/cmplx"

	"github.com/golang/glog"

	"github.com/tphakala/go-sensor-filter/internal/filter"
)

const (
	defaultOrder   = 2
	defaultFs      = 1.0
	defaultFc      = 0.1
	defaultSamples = 4096 // Impulse/step response length, a power of two for the FFT

	// Step response is settled once it stays within this distance of 1.
	settleTolerance = 0.01

	// Tail statistics use the last quarter of the step response.
	tailNumerator   = 3
	tailDenominator = 4

	decibelScale = 20.0
)

// Frequencies probed in the spectrum table, as fractions of the cutoff.
var probeRatios = []float64{0.1, 0.5, 1, 2, 4}

func main() {
	var (
		order   = flag.Int("order", defaultOrder, "Filter order")
		fs      = flag.Float64("fs", defaultFs, "Sampling frequency in Hz")
		fc      = flag.Float64("fc", defaultFc, "Cutoff frequency in Hz")
		samples = flag.Int("n", defaultSamples, "Response length in samples")
	)
	flag.Parse()
	defer glog.Flush()

	if *samples < 2 {
		glog.Exitf("-n must be at least 2, got %d", *samples)
	}

	alpha := *fc / *fs
	d, err := filter.DesignButterworth(*order, alpha)
	if err != nil {
		glog.Exitf("unable to design filter: %s", err)
	}

	fmt.Println("=== Butterworth Design ===")
	fmt.Printf("  Order: %d\n", d.Order)
	fmt.Printf("  Cutoff: %g Hz at %g Hz (alpha %.6f)\n", *fc, *fs, d.Alpha)
	fmt.Printf("  Gain: %.12g\n", d.Gain)
	fmt.Printf("  DC gain: %.12f\n\n", dcGain(d))

	fmt.Println("Poles (z-plane):")
	for i, p := range d.Poles {
		fmt.Printf("  %d: %8.5f %+8.5fi  |p| = %.6f\n", i, real(p), imag(p), cmplx.Abs(p))
	}

	fmt.Println("\nZeros (z-plane):")
	for i, z := range d.Zeros {
		fmt.Printf("  %d: %8.5f %+8.5fi\n", i, real(z), imag(z))
	}

	fmt.Println("\nTaps (ascending powers of z):")
	for i := range d.Cx {
		fmt.Printf("  %d: cx = %12.6g  cy = %12.6g\n", i, d.Cx[i], d.Cy[i])
	}

	impulse := impulseResponse(d, *samples)
	freqs := make([]float64, 0, len(probeRatios))
	for _, r := range probeRatios {
		if f := alpha * r; f < 0.5 {
			freqs = append(freqs, f)
		}
	}

	fmt.Println("\nMagnitude response (analytic vs FFT of impulse response):")
	for _, p := range spectrum(d, impulse, freqs) {
		fmt.Printf("  %8.3f Hz: %9.3f dB  %9.3f dB\n", p.freq*(*fs), p.analytic, p.measured)
	}

	st := analyzeStep(stepResponse(d, *samples))
	fmt.Println("\nStep response:")
	fmt.Printf("  Overshoot: %.3f%%\n", st.overshoot*100)
	fmt.Printf("  Settled after: %d samples (%.4g s)\n", st.settleSamples, float64(st.settleSamples) / *fs)
	fmt.Printf("  Tail mean: %.9f, std dev: %.3g\n", st.tailMean, st.tailStdDev)
}

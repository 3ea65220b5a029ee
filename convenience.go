package sensorfilter

import (
	"github.com/tphakala/simd/cpu"
)

// Process feeds every reading of input through f in order and returns the
// filtered values. f keeps its state, so consecutive calls continue the stream.
func Process(f Filter, input []float64) []float64 {
	output := make([]float64, len(input))
	for i, raw := range input {
		output[i] = f.Update(raw)
	}
	return output
}

// ProcessFloat32 is like Process but for float32 readings.
// Filtering runs in float64; only the I/O is float32.
func ProcessFloat32(f Filter, input []float32) []float32 {
	output := make([]float32, len(input))
	for i, raw := range input {
		output[i] = float32(f.Update(float64(raw)))
	}
	return output
}

// NewLowPass creates a second order Butterworth low-pass filter, the usual
// choice for smoothing a polled sensor.
func NewLowPass(samplingFrequency, cutoffFrequency float64) *Butterworth {
	return NewButterworth(DefaultOrder, samplingFrequency, cutoffFrequency)
}

// NewDeglitcher creates an averaging filter that re-baselines on jumps of at
// least stepChange, so real level changes are followed immediately while
// small fluctuations are smoothed.
func NewDeglitcher(stability, stepChange float64) (*Averaging, error) {
	a, err := NewAveraging(stability)
	if err != nil {
		return nil, err
	}
	if err := a.SetStepChange(stepChange); err != nil {
		return nil, err
	}
	return a, nil
}

// Info describes a filter instance.
type Info struct {
	// Kind is the strategy.
	Kind Kind

	// Order is the Butterworth order, or 1 for the single-pole strategies.
	Order int

	// Taps is the number of numerator plus denominator taps of the active
	// design (0 for strategies without taps or a stale design).
	Taps int

	// MemoryUsage is the approximate state size in bytes.
	MemoryUsage int64

	// Initialized mirrors Filter.Initialized.
	Initialized bool

	// SIMDType describes the instruction set used for design arithmetic.
	SIMDType string
}

// GetInfo returns information about a filter.
func GetInfo(f Filter) Info {
	info := Info{
		Kind:        f.Kind(),
		Order:       1,
		MemoryUsage: stateFieldsBytes,
		Initialized: f.Initialized(),
		SIMDType:    cpu.Info(),
	}

	if b, ok := f.(*Butterworth); ok {
		info.Order = b.Order()
		if d, ok := b.Design(); ok {
			info.Taps = len(d.NumeratorTaps) + len(d.DenominatorTaps)
		}
		info.MemoryUsage += b.memoryUsage()
	}

	return info
}

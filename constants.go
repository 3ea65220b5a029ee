package sensorfilter

import "math"

// DefaultStepChange returns the default step change threshold, +Inf, which
// disables step detection.
func DefaultStepChange() float64 { return math.Inf(1) }

// Default parameter values.
const (
	DefaultStability         = 0.0
	DefaultOrder             = 2
	DefaultSamplingFrequency = 1.0
	DefaultCutoffFrequency   = 0.499
	DefaultPower             = 2.0
	DefaultClip              = 2.0
	DefaultClipGain          = 1.0
)

// Noise classification
const (
	// noiseFraction of the step change threshold is the lower bound of the noise band.
	noiseFraction = 0.2
)

// Butterworth coercion limits, as fractions of the sampling frequency.
const (
	nyquistFraction  = 0.5
	minCutoffFactor  = 0.001
	maxCutoffFactor  = 0.499
	minOrder         = 1
	maxOrder         = 16 // bounds history size; taps lose precision beyond this
	fallbackFsHz     = 1.0
	bytesPerFloat64  = 8
	stateFieldsBytes = 6 * bytesPerFloat64 // value, step change, envelope and strategy scalars
)

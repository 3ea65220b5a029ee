package main

// Default command-line flag values
const (
	defaultKind   = "averaging"
	defaultColumn = 0 // First CSV column
)

// Demo signal parameters
const (
	demoSamples      = 60
	demoLevel        = 20.0 // Sensor baseline
	demoRipple       = 0.4  // Peak ripple
	demoRippleCycles = 0.23 // Ripple frequency in cycles per sample
	demoGlitchAt     = 15   // Sample index of a single spike
	demoGlitch       = 3.0  // Spike size, inside the noise band
	demoJumpAt       = 30   // Sample index of the level shift
	demoJump         = 8.0  // Level shift size, above the step change
	demoStability    = 0.8
	demoStepChange   = 5.0
	demoCutoff       = 0.05 // Butterworth cutoff at the default 1 Hz sampling frequency
)

// Output formatting
const (
	floatPrecision = 6
)

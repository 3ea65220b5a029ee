package sensorfilter

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Filter is the capability shared by every conditioning strategy.
//
// A Filter is a single-writer state machine: Update, Initialize, Filter and
// the setters must not be called concurrently on the same instance.
// Observers run inline on the calling goroutine.
type Filter interface {
	// Update feeds one raw reading. It re-baselines via Initialize when the
	// filter is not initialized or the reading is a step change, otherwise
	// it applies Filter. Returns the resulting value.
	Update(raw float64) float64

	// Initialize re-baselines the filter at raw and returns the new value.
	Initialize(raw float64) float64

	// Filter applies the strategy's steady-state recursion.
	// It must only be called on an initialized filter.
	Filter(raw float64) float64

	// IsStepChange reports whether raw is a discontinuity relative to the current value.
	IsStepChange(raw float64) bool

	// LooksLikeNoise reports whether raw differs from the current value by
	// more than a fifth of the step change threshold but less than the
	// threshold itself. It is advisory and not consulted by Update.
	LooksLikeNoise(raw float64) bool

	// ResetSwing collapses the envelope onto the current value.
	ResetSwing()

	Value() float64
	Initialized() bool
	StepChange() float64
	SetStepChange(threshold float64) error
	SwingHigh() float64
	SwingLow() float64
	Swing() float64

	// Kind identifies the strategy.
	Kind() Kind

	// AddObserver registers a change callback.
	AddObserver(fn ObserverFunc)

	// Params lists the named parameters the filter accepts.
	Params() []ParamSpec

	// Param returns the current value of a named parameter.
	Param(name string) (float64, error)

	// SetParam sets a named parameter.
	SetParam(name string, value float64) error
}

// Kind enumerates the conditioning strategies.
type Kind int

const (
	// KindAveraging blends the previous value with each new reading.
	KindAveraging Kind = iota

	// KindClipping limits how fast the rate of change may itself change.
	KindClipping

	// KindExponential weights new readings by the magnitude of the change in rate.
	KindExponential

	// KindButterworth is an N-th order digital Butterworth low-pass filter.
	KindButterworth
)

var kindNames = [...]string{
	KindAveraging:   "averaging",
	KindClipping:    "clipping",
	KindExponential: "exponential",
	KindButterworth: "butterworth",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a name such as "butterworth" into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Common errors returned by filters.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid filter configuration")

	// ErrInvalidKind indicates an unknown filter kind.
	ErrInvalidKind = errors.New("unknown filter kind")

	// ErrUnknownParam indicates a parameter name the filter does not accept.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrChannelMismatch indicates a frame or block with the wrong channel count,
	// or a channel index outside the bank.
	ErrChannelMismatch = errors.New("channel count mismatch")
)

// Config holds filter configuration.
//
// Start from DefaultConfig: the zero value has StepChange 0, which treats
// every reading as a discontinuity.
type Config struct {
	// Kind selects the strategy.
	Kind Kind

	// StepChange is the discontinuity threshold (≥ 0). +Inf disables step
	// detection; 0 re-baselines on every reading.
	StepChange float64

	// Stability is the Averaging weight of the previous value, in [0, 1].
	Stability float64

	// Order is the Butterworth order, clamped to [1, 16].
	Order int

	// SamplingFrequency is the Butterworth sampling rate. Non-positive values reset to 1.
	SamplingFrequency float64

	// CutoffFrequency is the Butterworth cutoff frequency, kept inside (0, SamplingFrequency/2).
	CutoffFrequency float64

	// Power is the Exponential sensitivity exponent.
	Power float64

	// Clip is the Clipping limit on the per-sample change in rate (≥ 0).
	Clip float64

	// Gain is the Clipping attenuation applied to each clipped change.
	Gain float64
}

// DefaultConfig returns the default configuration for a kind.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:              kind,
		StepChange:        DefaultStepChange(),
		Stability:         DefaultStability,
		Order:             DefaultOrder,
		SamplingFrequency: DefaultSamplingFrequency,
		CutoffFrequency:   DefaultCutoffFrequency,
		Power:             DefaultPower,
		Clip:              DefaultClip,
		Gain:              DefaultClipGain,
	}
}

// Validate checks if the configuration is valid.
// Butterworth coercions are applied later by the filter and never fail here.
func (c *Config) Validate() error {
	if c.Kind < KindAveraging || c.Kind > KindButterworth {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(c.Kind))
	}

	if err := validateStepChange(c.StepChange); err != nil {
		return err
	}

	switch c.Kind {
	case KindAveraging:
		return validateStability(c.Stability)
	case KindClipping:
		return validateClip(c.Clip)
	}

	return nil
}

// New creates a filter from the configuration.
func New(config *Config) (Filter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	var f Filter
	switch config.Kind {
	case KindAveraging:
		a := newAveraging()
		a.stability = config.Stability
		f = a
	case KindClipping:
		c := newClipping()
		c.clip = config.Clip
		c.gain = config.Gain
		f = c
	case KindExponential:
		e := newExponential()
		e.power = config.Power
		f = e
	case KindButterworth:
		b := newButterworth()
		b.SetOrder(config.Order)
		b.SetSamplingFrequency(config.SamplingFrequency)
		b.SetCutoffFrequency(config.CutoffFrequency)
		f = b
	}

	// Exponential recomputes its gain here.
	if err := f.SetStepChange(config.StepChange); err != nil {
		return nil, err
	}

	return f, nil
}

func validateStepChange(v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%w: step change must be >= 0, got %v", ErrInvalidConfig, v)
	}
	return nil
}

func validateStability(v float64) error {
	// Negated form also rejects NaN.
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: stability must be in [0, 1], got %v", ErrInvalidConfig, v)
	}
	return nil
}

func validateClip(v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%w: clip must be >= 0, got %v", ErrInvalidConfig, v)
	}
	return nil
}

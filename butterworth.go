package sensorfilter

import (
	"math"

	"github.com/tphakala/go-sensor-filter/internal/filter"
)

// Butterworth is an N-th order digital Butterworth low-pass filter.
//
// The design is derived at runtime from the order and the cutoff/sampling
// frequency ratio. Changing any of them marks the design stale and drops
// the filter out of the initialized state; the next Update redesigns it.
// If the normalized cutoff is outside (0, 0.5) the filter passes readings
// through unchanged and stays uninitialized until the configuration is fixed.
type Butterworth struct {
	state
	order             int
	samplingFrequency float64
	cutoffFrequency   float64

	design    *filter.Design
	recursion *filter.Recursion
	stale     bool
}

func newButterworth() *Butterworth {
	b := &Butterworth{
		order:             DefaultOrder,
		samplingFrequency: DefaultSamplingFrequency,
		cutoffFrequency:   DefaultCutoffFrequency,
		stale:             true,
	}
	b.state = newState(b)
	return b
}

// NewButterworth creates a Butterworth filter. Parameters are coerced as
// described on SetOrder, SetSamplingFrequency and SetCutoffFrequency.
func NewButterworth(order int, samplingFrequency, cutoffFrequency float64) *Butterworth {
	b := newButterworth()
	b.SetOrder(order)
	b.SetSamplingFrequency(samplingFrequency)
	b.SetCutoffFrequency(cutoffFrequency)
	return b
}

// Kind implements Filter.
func (b *Butterworth) Kind() Kind { return KindButterworth }

// Initialize implements Filter.
//
// A stale design is rebuilt first. When the normalized cutoff is invalid
// the reading is passed through and the filter stays uninitialized.
// Otherwise the history is primed with raw so the recursion starts
// without a transient.
func (b *Butterworth) Initialize(raw float64) float64 {
	if b.stale {
		alpha := b.cutoffFrequency / b.samplingFrequency
		d, err := filter.DesignButterworth(b.order, alpha)
		if err != nil {
			b.design = nil
			b.recursion = nil
			b.setValue(raw)
			b.setInitialized(false)
			return b.value
		}
		b.design = d
		b.recursion = filter.NewRecursion(d)
		b.stale = false
	}

	b.recursion.Prime(raw)
	return b.baseline(raw)
}

// Filter implements Filter.
func (b *Butterworth) Filter(x float64) float64 {
	b.setValue(b.recursion.Step(x))
	return b.value
}

func (b *Butterworth) Order() int                  { return b.order }
func (b *Butterworth) SamplingFrequency() float64 { return b.samplingFrequency }
func (b *Butterworth) CutoffFrequency() float64   { return b.cutoffFrequency }

// SetOrder sets the filter order. Orders outside [1, 16] are clamped.
func (b *Butterworth) SetOrder(order int) {
	b.order = min(max(order, minOrder), maxOrder)
	b.invalidate()
}

// SetSamplingFrequency sets the sampling frequency. Non-positive values reset to 1.
func (b *Butterworth) SetSamplingFrequency(fs float64) {
	if !(fs > 0) {
		fs = fallbackFsHz
	}
	b.samplingFrequency = fs
	b.invalidate()
}

// SetCutoffFrequency sets the cutoff frequency. Values outside
// (0, fs/2) are moved to 0.001·fs or 0.499·fs.
//
// The cutoff is not re-checked when the sampling frequency changes later;
// such a mismatch leaves the filter in pass-through mode.
func (b *Butterworth) SetCutoffFrequency(fc float64) {
	fs := b.samplingFrequency
	if !(fc > 0 && fc < nyquistFraction*fs) {
		if fc <= 0 {
			fc = minCutoffFactor * fs
		} else {
			fc = maxCutoffFactor * fs
		}
	}
	b.cutoffFrequency = fc
	b.invalidate()
}

func (b *Butterworth) invalidate() {
	b.stale = true
	b.setInitialized(false)
}

// ButterworthDesign is a read-only snapshot of the active design.
type ButterworthDesign struct {
	Order             int
	SamplingFrequency float64
	CutoffFrequency   float64
	NumeratorTaps     []float64
	DenominatorTaps   []float64
	Gain              float64
}

// Design returns a copy of the active design, or false while the design is
// stale or invalid.
func (b *Butterworth) Design() (ButterworthDesign, bool) {
	if b.stale || b.design == nil {
		return ButterworthDesign{}, false
	}
	return ButterworthDesign{
		Order:             b.design.Order,
		SamplingFrequency: b.samplingFrequency,
		CutoffFrequency:   b.cutoffFrequency,
		NumeratorTaps:     append([]float64(nil), b.design.Cx...),
		DenominatorTaps:   append([]float64(nil), b.design.Cy...),
		Gain:              b.design.Gain,
	}, true
}

var butterworthParams = []ParamSpec{
	stepChangeSpec,
	{Name: ParamOrder, Default: DefaultOrder, Description: "filter order, clamped to [1, 16]"},
	{Name: ParamSamplingFrequency, Default: DefaultSamplingFrequency, Description: "sampling frequency; non-positive resets to 1"},
	{Name: ParamCutoffFrequency, Default: DefaultCutoffFrequency, Description: "cutoff frequency, kept inside (0, fs/2)"},
}

// Params implements Filter.
func (b *Butterworth) Params() []ParamSpec { return cloneSpecs(butterworthParams) }

// Param implements Filter.
func (b *Butterworth) Param(name string) (float64, error) {
	switch name {
	case ParamStepChange:
		return b.stepChange, nil
	case ParamOrder:
		return float64(b.order), nil
	case ParamSamplingFrequency:
		return b.samplingFrequency, nil
	case ParamCutoffFrequency:
		return b.cutoffFrequency, nil
	}
	return 0, unknownParam(KindButterworth, name)
}

// SetParam implements Filter. The order is rounded to the nearest integer.
func (b *Butterworth) SetParam(name string, v float64) error {
	switch name {
	case ParamStepChange:
		return b.SetStepChange(v)
	case ParamOrder:
		if math.IsNaN(v) {
			v = minOrder
		}
		b.SetOrder(int(math.Round(math.Max(minOrder, math.Min(v, maxOrder)))))
		return nil
	case ParamSamplingFrequency:
		b.SetSamplingFrequency(v)
		return nil
	case ParamCutoffFrequency:
		b.SetCutoffFrequency(v)
		return nil
	}
	return unknownParam(KindButterworth, name)
}

// memoryUsage returns the bytes held by the active design and history.
func (b *Butterworth) memoryUsage() int64 {
	if b.recursion == nil {
		return 0
	}
	return b.recursion.MemoryUsage()
}

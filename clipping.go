package sensorfilter

import "math"

// Clipping is a rate-limited integrator. Each reading proposes a new rate of
// change; the difference from the current rate is clipped to ±clip, scaled
// by gain and accumulated. The value moves by the accumulated rate and never
// snaps directly to the reading.
type Clipping struct {
	state
	clip float64
	gain float64

	// dv is the accumulated rate of change.
	dv float64
}

func newClipping() *Clipping {
	c := &Clipping{clip: DefaultClip, gain: DefaultClipGain}
	c.state = newState(c)
	return c
}

// NewClipping creates a clipping filter. A negative clip returns ErrInvalidConfig.
func NewClipping(clip, gain float64) (*Clipping, error) {
	c := newClipping()
	if err := c.SetClip(clip); err != nil {
		return nil, err
	}
	c.gain = gain
	return c, nil
}

// Kind implements Filter.
func (c *Clipping) Kind() Kind { return KindClipping }

// Initialize implements Filter. The accumulated rate restarts at zero.
func (c *Clipping) Initialize(raw float64) float64 {
	c.dv = 0
	return c.baseline(raw)
}

// Filter implements Filter.
func (c *Clipping) Filter(x float64) float64 {
	d := x - c.value
	dd := d - c.dv
	dd = math.Max(-c.clip, math.Min(c.clip, dd))
	dd *= c.gain
	c.dv += dd
	c.setValue(c.value + c.dv)
	return c.value
}

// Rate returns the accumulated rate of change.
func (c *Clipping) Rate() float64 { return c.dv }

func (c *Clipping) Clip() float64 { return c.clip }
func (c *Clipping) Gain() float64 { return c.gain }

// SetClip sets the maximum per-sample change in rate. Negative values are rejected.
func (c *Clipping) SetClip(v float64) error {
	if err := validateClip(v); err != nil {
		return err
	}
	c.clip = v
	return nil
}

// SetGain sets the attenuation applied to each clipped change.
func (c *Clipping) SetGain(v float64) { c.gain = v }

var clippingParams = []ParamSpec{
	stepChangeSpec,
	{Name: ParamClip, Default: DefaultClip, Description: "maximum per-sample change in rate of change"},
	{Name: ParamGain, Default: DefaultClipGain, Description: "attenuation of each clipped change; < 1 dampens"},
}

// Params implements Filter.
func (c *Clipping) Params() []ParamSpec { return cloneSpecs(clippingParams) }

// Param implements Filter.
func (c *Clipping) Param(name string) (float64, error) {
	switch name {
	case ParamStepChange:
		return c.stepChange, nil
	case ParamClip:
		return c.clip, nil
	case ParamGain:
		return c.gain, nil
	}
	return 0, unknownParam(KindClipping, name)
}

// SetParam implements Filter.
func (c *Clipping) SetParam(name string, v float64) error {
	switch name {
	case ParamStepChange:
		return c.SetStepChange(v)
	case ParamClip:
		return c.SetClip(v)
	case ParamGain:
		c.SetGain(v)
		return nil
	}
	return unknownParam(KindClipping, name)
}

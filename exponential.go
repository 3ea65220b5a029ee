package sensorfilter

import "math"

// Exponential adapts its blend weight to the change in rate of change:
//
//	weight = min(1, gain·|dd|^power),  gain = 1/|step_change|^power
//
// A sudden change in rate pushes the weight toward 1 and the filter tracks
// the reading; a steady trend is heavily damped. With the default infinite
// step change the gain is 0 and the value holds until a step change re-baselines.
type Exponential struct {
	state
	power float64
	gain  float64

	// dv is the previous realized change.
	dv float64
}

func newExponential() *Exponential {
	e := &Exponential{power: DefaultPower}
	e.state = newState(e)
	e.updateGain()
	return e
}

// NewExponential creates an exponential filter with the given power and step change.
func NewExponential(power, stepChange float64) (*Exponential, error) {
	e := newExponential()
	e.power = power
	if err := e.SetStepChange(stepChange); err != nil {
		return nil, err
	}
	return e, nil
}

// Kind implements Filter.
func (e *Exponential) Kind() Kind { return KindExponential }

// Initialize implements Filter. The previous change restarts at zero.
func (e *Exponential) Initialize(raw float64) float64 {
	e.dv = 0
	return e.baseline(raw)
}

// Filter implements Filter.
func (e *Exponential) Filter(x float64) float64 {
	d := x - e.value
	dd := d - e.dv
	weight := e.gain * math.Pow(math.Abs(dd), e.power)
	if weight > 1 {
		weight = 1
	}
	newValue := e.value*(1-weight) + x*weight
	e.dv = newValue - e.value
	e.setValue(newValue)
	return e.value
}

func (e *Exponential) Power() float64 { return e.power }

// Gain returns the derived gain 1/|step_change|^power.
func (e *Exponential) Gain() float64 { return e.gain }

// SetPower sets the sensitivity exponent and recomputes the gain.
func (e *Exponential) SetPower(p float64) {
	e.power = p
	e.updateGain()
}

// SetStepChange implements Filter and recomputes the gain.
func (e *Exponential) SetStepChange(threshold float64) error {
	if err := e.state.SetStepChange(threshold); err != nil {
		return err
	}
	e.updateGain()
	return nil
}

func (e *Exponential) updateGain() {
	e.gain = 1 / math.Pow(math.Abs(e.stepChange), e.power)
}

var exponentialParams = []ParamSpec{
	stepChangeSpec,
	{Name: ParamPower, Default: DefaultPower, Description: "sensitivity exponent applied to the change in rate"},
}

// Params implements Filter.
func (e *Exponential) Params() []ParamSpec { return cloneSpecs(exponentialParams) }

// Param implements Filter.
func (e *Exponential) Param(name string) (float64, error) {
	switch name {
	case ParamStepChange:
		return e.stepChange, nil
	case ParamPower:
		return e.power, nil
	}
	return 0, unknownParam(KindExponential, name)
}

// SetParam implements Filter.
func (e *Exponential) SetParam(name string, v float64) error {
	switch name {
	case ParamStepChange:
		return e.SetStepChange(v)
	case ParamPower:
		e.SetPower(v)
		return nil
	}
	return unknownParam(KindExponential, name)
}

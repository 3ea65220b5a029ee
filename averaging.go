package sensorfilter

// Averaging is a single-pole exponential average:
//
//	value = value·stability + x·(1 - stability)
//
// Stability 0 passes readings through; stability 1 freezes the value.
type Averaging struct {
	state
	stability float64
}

func newAveraging() *Averaging {
	a := &Averaging{stability: DefaultStability}
	a.state = newState(a)
	return a
}

// NewAveraging creates an averaging filter with the given stability.
// Stability outside [0, 1] returns ErrInvalidConfig.
func NewAveraging(stability float64) (*Averaging, error) {
	a := newAveraging()
	if err := a.SetStability(stability); err != nil {
		return nil, err
	}
	return a, nil
}

// Kind implements Filter.
func (a *Averaging) Kind() Kind { return KindAveraging }

// Initialize implements Filter.
func (a *Averaging) Initialize(raw float64) float64 {
	return a.baseline(raw)
}

// Filter implements Filter.
func (a *Averaging) Filter(x float64) float64 {
	oldCoeff := a.stability
	newCoeff := 1 - a.stability
	a.setValue(a.value*oldCoeff + x*newCoeff)
	return a.value
}

// Stability returns the weight given to the previous value.
func (a *Averaging) Stability() float64 { return a.stability }

// SetStability sets the weight given to the previous value.
// Values outside [0, 1] are rejected and leave the filter unchanged.
func (a *Averaging) SetStability(v float64) error {
	if err := validateStability(v); err != nil {
		return err
	}
	a.stability = v
	return nil
}

var averagingParams = []ParamSpec{
	stepChangeSpec,
	{Name: ParamStability, Default: DefaultStability, Description: "weight of the previous value, in [0, 1]"},
}

// Params implements Filter.
func (a *Averaging) Params() []ParamSpec { return cloneSpecs(averagingParams) }

// Param implements Filter.
func (a *Averaging) Param(name string) (float64, error) {
	switch name {
	case ParamStepChange:
		return a.stepChange, nil
	case ParamStability:
		return a.stability, nil
	}
	return 0, unknownParam(KindAveraging, name)
}

// SetParam implements Filter.
func (a *Averaging) SetParam(name string, v float64) error {
	switch name {
	case ParamStepChange:
		return a.SetStepChange(v)
	case ParamStability:
		return a.SetStability(v)
	}
	return unknownParam(KindAveraging, name)
}

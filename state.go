package sensorfilter

import "math"

// strategy is implemented by each concrete filter so that the shared state
// can dispatch Update without knowing the concrete type.
type strategy interface {
	Initialize(raw float64) float64
	Filter(raw float64) float64
}

// state holds the fields common to every strategy: the filtered value, the
// initialization flag, the step change threshold and the swing envelope.
// Strategies embed it and mutate value only through setValue or baseline so
// that the envelope and observers stay in sync.
type state struct {
	value       float64
	initialized bool
	stepChange  float64
	swingHigh   float64
	swingLow    float64

	observers []ObserverFunc
	impl      strategy
}

func newState(impl strategy) state {
	return state{
		stepChange: DefaultStepChange(),
		swingHigh:  math.Inf(-1),
		swingLow:   math.Inf(1),
		impl:       impl,
	}
}

// Update implements Filter.
func (s *state) Update(raw float64) float64 {
	if !s.initialized || s.IsStepChange(raw) {
		return s.impl.Initialize(raw)
	}
	return s.impl.Filter(raw)
}

// IsStepChange implements Filter.
func (s *state) IsStepChange(raw float64) bool {
	if math.IsNaN(s.value) || math.IsNaN(raw) {
		return true
	}
	return math.Abs(raw-s.value) >= s.stepChange
}

// LooksLikeNoise implements Filter.
func (s *state) LooksLikeNoise(raw float64) bool {
	if !(s.stepChange > 0) {
		return false
	}
	d := math.Abs(raw - s.value)
	return d > noiseFraction*s.stepChange && d < s.stepChange
}

// ResetSwing implements Filter.
func (s *state) ResetSwing() {
	s.swingHigh = s.value
	s.swingLow = s.value
	s.emit(PropertySwingHigh, s.swingHigh)
	s.emit(PropertySwingLow, s.swingLow)
	s.emit(PropertySwing, s.Swing())
}

func (s *state) Value() float64      { return s.value }
func (s *state) Initialized() bool   { return s.initialized }
func (s *state) StepChange() float64 { return s.stepChange }
func (s *state) SwingHigh() float64  { return s.swingHigh }
func (s *state) SwingLow() float64   { return s.swingLow }

// Swing returns SwingHigh - SwingLow, or 0 while the envelope is empty.
func (s *state) Swing() float64 {
	if s.swingHigh < s.swingLow {
		return 0
	}
	return s.swingHigh - s.swingLow
}

// SetStepChange implements Filter for strategies without derived state.
func (s *state) SetStepChange(threshold float64) error {
	if err := validateStepChange(threshold); err != nil {
		return err
	}
	s.stepChange = threshold
	return nil
}

// AddObserver implements Filter.
func (s *state) AddObserver(fn ObserverFunc) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// baseline sets value to raw, collapses the envelope onto it and marks the
// filter initialized. It is the default Initialize behavior.
func (s *state) baseline(raw float64) float64 {
	s.value = raw
	s.swingHigh = raw
	s.swingLow = raw
	s.emit(PropertyValue, raw)
	s.emit(PropertySwingHigh, raw)
	s.emit(PropertySwingLow, raw)
	s.emit(PropertySwing, s.Swing())
	s.setInitialized(true)
	return s.value
}

// setValue assigns value and widens the envelope to contain it.
func (s *state) setValue(v float64) {
	s.value = v
	s.emit(PropertyValue, v)

	widened := false
	if v > s.swingHigh {
		s.swingHigh = v
		s.emit(PropertySwingHigh, v)
		widened = true
	}
	if v < s.swingLow {
		s.swingLow = v
		s.emit(PropertySwingLow, v)
		widened = true
	}
	if widened {
		s.emit(PropertySwing, s.Swing())
	}
}

func (s *state) setInitialized(v bool) {
	if s.initialized == v {
		return
	}
	s.initialized = v
	if len(s.observers) == 0 {
		return
	}
	c := Change{Property: PropertyInitialized, Initialized: v}
	if v {
		c.Value = 1
	}
	for _, fn := range s.observers {
		fn(c)
	}
}

func (s *state) emit(p Property, v float64) {
	for _, fn := range s.observers {
		fn(Change{Property: p, Value: v})
	}
}

// stepChangeSpec is shared by every strategy's parameter list.
var stepChangeSpec = ParamSpec{
	Name:        ParamStepChange,
	Default:     DefaultStepChange(),
	Description: "discontinuity threshold; 0 re-baselines on every reading",
}

// WeightedUpdate blends x toward old: old·stability + x·(1-stability) when
// stability is in (0, 1]; otherwise it returns x.
func WeightedUpdate(x, old, stability float64) float64 {
	if stability > 0 && stability <= 1 {
		return old*stability + x*(1-stability)
	}
	return x
}

package sensorfilter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-sensor-filter/internal/testutil"
)

// TestAveraging_Sequence tests the documented half-stability sequence.
func TestAveraging_Sequence(t *testing.T) {
	a, err := NewAveraging(0.5)
	require.NoError(t, err)

	got := Process(a, []float64{10, 20, 20, 20})
	assert.Equal(t, []float64{10, 15, 17.5, 18.75}, got)
	assert.Equal(t, 10.0, a.SwingLow())
	assert.Equal(t, 18.75, a.SwingHigh())
}

// TestAveraging_StabilityBounds tests the pass-through and frozen extremes.
func TestAveraging_StabilityBounds(t *testing.T) {
	input := []float64{1, 4, -2, 8}

	pass, err := NewAveraging(0)
	require.NoError(t, err)
	assert.Equal(t, input, Process(pass, input))

	frozen, err := NewAveraging(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, Process(frozen, input))
}

// TestAveraging_ConvergesToConstant verifies repeated readings approach the input.
func TestAveraging_ConvergesToConstant(t *testing.T) {
	a, err := NewAveraging(0.9)
	require.NoError(t, err)
	a.Update(0)

	out := Process(a, testutil.Constant(400, 3))
	testutil.AssertMonotonic(t, out)
	testutil.AssertAllInRange(t, out, 0, 3)
	assert.InDelta(t, 3, out[len(out)-1], testutil.ConvergenceTolerance)
}

// TestAveraging_InvalidStability verifies out-of-range stability is rejected.
func TestAveraging_InvalidStability(t *testing.T) {
	for _, v := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		_, err := NewAveraging(v)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "stability %v", v)
	}

	a, err := NewAveraging(0.3)
	require.NoError(t, err)
	assert.Error(t, a.SetStability(2))
	assert.Equal(t, 0.3, a.Stability(), "rejected value must not be stored")
	assert.Error(t, a.SetParam(ParamStability, -1))
	assert.Equal(t, 0.3, a.Stability())
}

// TestClipping_RateLimited tests the rate-limited ramp toward a constant.
func TestClipping_RateLimited(t *testing.T) {
	c, err := NewClipping(1, 1)
	require.NoError(t, err)
	c.Update(0)

	got := Process(c, []float64{5, 5, 5})
	assert.Equal(t, []float64{1, 3, 5}, got)
	assert.Equal(t, 2.0, c.Rate())
}

// TestClipping_Gain verifies gain scales each clipped change.
func TestClipping_Gain(t *testing.T) {
	c, err := NewClipping(100, 0.5)
	require.NoError(t, err)
	c.Update(0)

	assert.Equal(t, 2.0, c.Update(4))
	assert.Equal(t, 4.0, c.Update(4))
}

// TestClipping_ZeroClipFreezesValue verifies clip 0 never changes the value.
func TestClipping_ZeroClipFreezesValue(t *testing.T) {
	c, err := NewClipping(0, 1)
	require.NoError(t, err)
	c.Update(3)

	for _, x := range []float64{10, -10, 4, 100} {
		assert.Equal(t, 3.0, c.Update(x))
	}
	assert.Zero(t, c.Swing())
}

// TestClipping_InitializeResetsRate verifies re-baselining drops the accumulated rate.
func TestClipping_InitializeResetsRate(t *testing.T) {
	c, err := NewClipping(1, 1)
	require.NoError(t, err)
	c.Update(0)
	Process(c, []float64{5, 5})
	require.NotZero(t, c.Rate())

	assert.Equal(t, 7.0, c.Initialize(7))
	assert.Zero(t, c.Rate())
	assert.Equal(t, 7.0, c.Update(7))
}

// TestClipping_InvalidClip verifies negative clip values are rejected.
func TestClipping_InvalidClip(t *testing.T) {
	_, err := NewClipping(-1, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	c, err := NewClipping(2, 1)
	require.NoError(t, err)
	assert.Error(t, c.SetClip(math.NaN()))
	assert.Equal(t, 2.0, c.Clip())
}

// TestExponential_AdaptiveWeight tests the weight derived from the change in rate.
func TestExponential_AdaptiveWeight(t *testing.T) {
	e, err := NewExponential(2, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, e.Gain(), testutil.DefaultTolerance)

	e.Update(0)
	assert.InDelta(t, 1.25, e.Update(5), testutil.DefaultTolerance)
	assert.InDelta(t, 1.484375, e.Update(5), testutil.DefaultTolerance)
}

// TestExponential_WeightSaturates verifies the weight never exceeds 1.
func TestExponential_WeightSaturates(t *testing.T) {
	e, err := NewExponential(1, 10)
	require.NoError(t, err)
	e.Update(0)

	// Crossing zero doubles the change in rate, pushing gain·|dd| above 1.
	e.Update(6)
	got := e.Update(-3)
	assert.Equal(t, -3.0, got)
}

// TestExponential_InfiniteStepChangeFreezes verifies the default gain of 0 holds the value.
func TestExponential_InfiniteStepChangeFreezes(t *testing.T) {
	e, err := NewExponential(DefaultPower, DefaultStepChange())
	require.NoError(t, err)
	assert.Zero(t, e.Gain())

	e.Update(2)
	for _, x := range []float64{5, -5, 1e6} {
		assert.Equal(t, 2.0, e.Update(x))
	}
}

// TestExponential_GainTracksParameters verifies the gain follows power and step change.
func TestExponential_GainTracksParameters(t *testing.T) {
	e, err := NewExponential(2, 10)
	require.NoError(t, err)

	e.SetPower(1)
	assert.InDelta(t, 0.1, e.Gain(), testutil.DefaultTolerance)

	require.NoError(t, e.SetParam(ParamStepChange, 4))
	assert.InDelta(t, 0.25, e.Gain(), testutil.DefaultTolerance)

	require.NoError(t, e.SetParam(ParamPower, 2))
	assert.InDelta(t, 1.0/16, e.Gain(), testutil.DefaultTolerance)

	assert.Error(t, e.SetStepChange(-1))
	assert.Equal(t, 4.0, e.StepChange())
}

// TestExponential_InitializeResetsRate verifies dv restarts at zero after a step change.
func TestExponential_InitializeResetsRate(t *testing.T) {
	a, err := NewExponential(2, 10)
	require.NoError(t, err)
	b, err := NewExponential(2, 10)
	require.NoError(t, err)

	a.Update(0)
	a.Update(5)
	a.Update(20) // step change
	b.Update(20)

	assert.Equal(t, b.Update(25), a.Update(25))
}

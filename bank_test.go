package sensorfilter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-sensor-filter/internal/testutil"
)

func testBankInput(channels, n int) [][]float64 {
	input := make([][]float64, channels)
	for ch := range input {
		input[ch] = testutil.Sine(n, 0.01*float64(ch+1), float64(ch+1), float64(ch))
	}
	return input
}

// TestBank_ParallelMatchesSequential verifies both paths produce bit-identical output.
func TestBank_ParallelMatchesSequential(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			cfg := DefaultConfig(kind)
			cfg.Stability = 0.8
			cfg.StepChange = 4
			cfg.SamplingFrequency = 50
			cfg.CutoffFrequency = 3

			seq, err := NewBank(&cfg, 4)
			require.NoError(t, err)
			par, err := NewBank(&cfg, 4)
			require.NoError(t, err)
			par.SetParallel(true)

			input := testBankInput(4, 1000)
			want, err := seq.ProcessMulti(input)
			require.NoError(t, err)
			got, err := par.ProcessMulti(input)
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

// TestBank_ChannelsAreIndependent verifies each channel matches a standalone filter.
func TestBank_ChannelsAreIndependent(t *testing.T) {
	cfg := DefaultConfig(KindButterworth)
	cfg.Order = 3
	cfg.SamplingFrequency = 10
	cfg.CutoffFrequency = 1

	bank, err := NewBank(&cfg, 3)
	require.NoError(t, err)
	bank.SetParallel(true)

	input := testBankInput(3, 300)
	got, err := bank.ProcessMulti(input)
	require.NoError(t, err)

	for ch := range input {
		f, err := New(&cfg)
		require.NoError(t, err)
		assert.Equal(t, Process(f, input[ch]), got[ch], "channel %d", ch)
		assert.Equal(t, f.Value(), channelOf(t, bank, ch).Value())
	}
}

// TestBank_UpdateFrame tests frame-at-a-time feeding.
func TestBank_UpdateFrame(t *testing.T) {
	cfg := DefaultConfig(KindAveraging)
	cfg.Stability = 0.5

	bank, err := NewBank(&cfg, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, bank.Channels())
	assert.Equal(t, cfg, bank.Config())

	out, err := bank.Update([]float64{10, 100})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 100}, out)

	out, err = bank.Update([]float64{20, 200})
	require.NoError(t, err)
	assert.Equal(t, []float64{15, 150}, out)

	bank.ResetSwing()
	assert.Zero(t, channelOf(t, bank, 0).Swing())
	assert.Zero(t, channelOf(t, bank, 1).Swing())
}

func channelOf(t *testing.T, bank *Bank, ch int) Filter {
	t.Helper()
	f, err := bank.Channel(ch)
	require.NoError(t, err)
	return f
}

// TestBank_ChannelMismatch verifies wrong channel counts are rejected.
func TestBank_ChannelMismatch(t *testing.T) {
	cfg := DefaultConfig(KindAveraging)
	bank, err := NewBank(&cfg, 2)
	require.NoError(t, err)

	for _, ch := range []int{-1, 2, 100} {
		f, err := bank.Channel(ch)
		assert.Nil(t, f, "channel %d", ch)
		assert.True(t, errors.Is(err, ErrChannelMismatch), "channel %d", ch)
	}

	_, err = bank.Update([]float64{1})
	assert.True(t, errors.Is(err, ErrChannelMismatch))

	_, err = bank.ProcessMulti([][]float64{{1}, {2}, {3}})
	assert.True(t, errors.Is(err, ErrChannelMismatch))
}

// TestBank_SetParam verifies a parameter reaches every channel.
func TestBank_SetParam(t *testing.T) {
	cfg := DefaultConfig(KindButterworth)
	bank, err := NewBank(&cfg, 3)
	require.NoError(t, err)

	require.NoError(t, bank.SetParam(ParamOrder, 5))
	for ch := range bank.Channels() {
		v, err := channelOf(t, bank, ch).Param(ParamOrder)
		require.NoError(t, err)
		assert.Equal(t, 5.0, v)
	}

	err = bank.SetParam(ParamStability, 0.5)
	assert.True(t, errors.Is(err, ErrUnknownParam))
}

// TestNewBank_Invalid tests bank construction errors.
func TestNewBank_Invalid(t *testing.T) {
	cfg := DefaultConfig(KindAveraging)

	_, err := NewBank(nil, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBank(&cfg, 0)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBank(&cfg, maxChannels+1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	bad := cfg
	bad.Stability = 3
	_, err = NewBank(&bad, 2)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func BenchmarkBank_ProcessMulti(b *testing.B) {
	cfg := DefaultConfig(KindButterworth)
	cfg.Order = 4
	cfg.SamplingFrequency = 48000
	cfg.CutoffFrequency = 1000

	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			bank, err := NewBank(&cfg, 8)
			require.NoError(b, err)
			bank.SetParallel(parallel)
			input := testBankInput(8, 4096)
			b.ReportAllocs()
			for b.Loop() {
				_, _ = bank.ProcessMulti(input)
			}
		})
	}
}

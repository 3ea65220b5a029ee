package sensorfilter

import (
	"fmt"
	"sync"
)

// maxChannels bounds the number of channels in a Bank.
const maxChannels = 1024

// Bank conditions several channels with identically configured filters,
// one filter per channel.
//
// Each filter keeps a single writer: ProcessMulti hands every channel to at
// most one goroutine, and the Bank itself must not be used concurrently.
type Bank struct {
	config   Config
	filters  []Filter
	parallel bool
}

// NewBank creates a bank of channels filters built from config.
func NewBank(config *Config, channels int) (*Bank, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}
	if channels > maxChannels {
		return nil, fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	b := &Bank{
		config:  *config,
		filters: make([]Filter, channels),
	}
	for ch := range b.filters {
		f, err := New(config)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		b.filters[ch] = f
	}
	return b, nil
}

// SetParallel enables one goroutine per channel in ProcessMulti.
// Has no effect on a single channel.
func (b *Bank) SetParallel(enabled bool) { b.parallel = enabled }

// Channels returns the number of channels.
func (b *Bank) Channels() int { return len(b.filters) }

// Channel returns the filter for channel ch.
func (b *Bank) Channel(ch int) (Filter, error) {
	if ch < 0 || ch >= len(b.filters) {
		return nil, fmt.Errorf("%w: channel %d out of range [0, %d)", ErrChannelMismatch, ch, len(b.filters))
	}
	return b.filters[ch], nil
}

// Config returns the configuration the bank was built from.
func (b *Bank) Config() Config { return b.config }

// Update feeds one frame (one reading per channel) and returns the filtered frame.
func (b *Bank) Update(frame []float64) ([]float64, error) {
	if len(frame) != len(b.filters) {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrChannelMismatch, len(b.filters), len(frame))
	}
	out := make([]float64, len(frame))
	for ch, raw := range frame {
		out[ch] = b.filters[ch].Update(raw)
	}
	return out, nil
}

// ProcessMulti filters a block per channel. Each slice in input holds the
// readings of one channel in arrival order.
func (b *Bank) ProcessMulti(input [][]float64) ([][]float64, error) {
	if len(input) != len(b.filters) {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrChannelMismatch, len(b.filters), len(input))
	}

	output := make([][]float64, len(input))

	if !b.parallel || len(input) <= 1 {
		for ch := range input {
			output[ch] = Process(b.filters[ch], input[ch])
		}
		return output, nil
	}

	var wg sync.WaitGroup
	for ch := range input {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			output[channel] = Process(b.filters[channel], input[channel])
		}(ch)
	}
	wg.Wait()

	return output, nil
}

// SetParam sets a named parameter on every channel.
func (b *Bank) SetParam(name string, v float64) error {
	for ch, f := range b.filters {
		if err := f.SetParam(name, v); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

// Apply sets named parameters on every channel, in the order used by Apply.
func (b *Bank) Apply(values map[string]float64) error {
	for ch, f := range b.filters {
		if err := Apply(f, values); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

// ResetSwing collapses every channel's envelope onto its current value.
func (b *Bank) ResetSwing() {
	for _, f := range b.filters {
		f.ResetSwing()
	}
}

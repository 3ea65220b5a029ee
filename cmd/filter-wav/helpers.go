package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
	"github.com/tphakala/simd/f64"

	sensorfilter "github.com/tphakala/go-sensor-filter"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	glog.V(1).Infof("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         format.SampleRate,
		channels:     format.NumChannels,
		bitDepth:     bitDepth,
		totalSamples: int64(duration.Seconds() * float64(format.SampleRate)),
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// createChannelBank builds one filter per channel. The sampling frequency
// defaults to the file's rate; params may override it.
func createChannelBank(
	kind sensorfilter.Kind,
	channels, sampleRate int,
	params map[string]float64,
	parallel bool,
) (*sensorfilter.Bank, error) {
	cfg := sensorfilter.DefaultConfig(kind)
	cfg.SamplingFrequency = float64(sampleRate)
	cfg.CutoffFrequency = defaultCutoffHz

	bank, err := sensorfilter.NewBank(&cfg, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create filters: %w", err)
	}
	if err := bank.Apply(params); err != nil {
		return nil, fmt.Errorf("failed to apply parameters: %w", err)
	}
	bank.SetParallel(parallel)
	return bank, nil
}

// wavOutputWriter wraps the output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buffer  *audio.IntBuffer
}

// createWAVOutput creates the output file and a PCM encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buffer: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buffer.Data = samples
	return w.encoder.Write(w.buffer)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// filterBuffers holds the preallocated buffers for one chunk.
type filterBuffers struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]float64
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newFilterBuffers creates and preallocates all processing buffers.
func newFilterBuffers(channels, bitDepth int, format *audio.Format) *filterBuffers {
	channelBufs := make([][]float64, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float64, bufferSize)
	}

	maxVal := getMaxValue(bitDepth)
	return &filterBuffers{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, bufferSize*channels),
			Format: format,
		},
		channelBufs:  channelBufs,
		outputIntBuf: make([]int, bufferSize*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
}

func newProgressTracker(totalSamples int64) *progressTracker {
	return &progressTracker{totalSamples: totalSamples}
}

// reportIfNeeded logs progress when another progressInterval percent is done.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !glog.V(1) || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		glog.Infof("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto splits interleaved int samples into per-channel buffers
// normalized to [-1, 1].
func deinterleaveInto(data []int, channelBufs [][]float64, numChannels, samplesPerChannel int, invMaxVal float64) {
	if numChannels == monoChannels {
		buf := channelBufs[0][:samplesPerChannel]
		for i := range buf {
			buf[i] = float64(data[i])
		}
		f64.Scale(buf, buf, invMaxVal)
		return
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch])
		}
	}
	for ch := range numChannels {
		buf := channelBufs[ch][:samplesPerChannel]
		f64.Scale(buf, buf, invMaxVal)
	}
}

// interleaveInto writes per-channel samples into dst, clamping to [-1, 1].
// Returns the number of elements written, or 0 if dst is too small.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels
	if len(dst) < totalLen {
		return 0
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, channels[ch][i]))
			dst[base+ch] = int(sample * maxVal)
		}
	}

	return totalLen
}

// channelViews returns each channel buffer truncated to n samples.
func channelViews(bufs [][]float64, n int) [][]float64 {
	views := make([][]float64, len(bufs))
	for ch, buf := range bufs {
		views[ch] = buf[:n]
	}
	return views
}
